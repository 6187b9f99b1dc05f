package sequence

// ProfileSnapshot is the slice of a provider's public profile the completion
// calculator scores. The worker assembles it from the accounts and
// provider_profiles rows plus the live Stripe account status — nothing here
// is persisted, so the score always reflects the profile as it stands.
type ProfileSnapshot struct {
	BusinessName   string
	Category       string
	City           string
	Bio            string
	PriceRange     string
	PortfolioCount int
	PayoutsEnabled bool
}

// Completion is the derived score plus the human-readable list of gaps. The
// missing items are written for direct inclusion in the reminder email.
type Completion struct {
	Percentage   int
	MissingItems []string
}

const (
	minBioLength     = 80 // shorter bios read as placeholders
	minPortfolioSize = 3
)

// completionChecks is the weighted checklist behind the percentage. Weights
// sum to 100.
var completionChecks = []struct {
	weight  int
	missing string
	done    func(ProfileSnapshot) bool
}{
	{20, "Add your business name", func(p ProfileSnapshot) bool { return p.BusinessName != "" }},
	{15, "Choose a service category", func(p ProfileSnapshot) bool { return p.Category != "" }},
	{10, "Set your city", func(p ProfileSnapshot) bool { return p.City != "" }},
	{15, "Write a longer description of your services", func(p ProfileSnapshot) bool { return len(p.Bio) >= minBioLength }},
	{10, "Add a price range", func(p ProfileSnapshot) bool { return p.PriceRange != "" }},
	{20, "Upload at least 3 portfolio photos", func(p ProfileSnapshot) bool { return p.PortfolioCount >= minPortfolioSize }},
	{10, "Finish setting up payouts", func(p ProfileSnapshot) bool { return p.PayoutsEnabled }},
}

// ComputeCompletion scores a profile snapshot against the checklist.
// MissingItems preserves checklist order so the most impactful gaps come
// first in the reminder email.
func ComputeCompletion(p ProfileSnapshot) Completion {
	c := Completion{}
	for _, check := range completionChecks {
		if check.done(p) {
			c.Percentage += check.weight
		} else {
			c.MissingItems = append(c.MissingItems, check.missing)
		}
	}
	return c
}
