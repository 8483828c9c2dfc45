package guidance

// Template ids. The evaluator owns one predicate per id.
const (
	TaskAddProduct       = "add_product"
	TaskConfirmOrders    = "confirm_orders"
	TaskRespondMessages  = "respond_messages"
	TaskWeeklyHabit      = "weekly_habit"
	TaskReviewAISuggests = "review_ai_suggestions"
	TaskVerifyDAN        = "verify_dan"
	TaskAddPhone         = "add_phone"
	TaskEnablePayment    = "enable_payment"
	TaskMonthlyHabit     = "monthly_habit"
	TaskReviewInsights   = "review_insights"
	TaskCompleteProfile  = "complete_profile"
	TaskCustomizeStore   = "customize_store"
)

// catalog is the static template registry. Order within a tier is the
// declared merge order for recurring templates.
var catalog = []TaskTemplate{
	// --- daily, recurring ---
	{
		ID:           TaskAddProduct,
		Title:        "Add a product",
		Description:  "Put at least one product in your catalog so customers have something to buy.",
		Icon:         "package-plus",
		WhyItMatters: "An empty catalog means an invisible store. Your first product is your storefront.",
		HowTo: []string{
			"Open the Products screen",
			"Tap 'New product' and add a name, price and photo",
			"Publish it",
		},
		CTAText:   "Add product",
		CTAAction: NavigateTo("products"),
		Impact:    "Stores with at least 5 products get 3x more first orders.",
		Tier:      TierDaily,
	},
	{
		ID:           TaskConfirmOrders,
		Title:        "Confirm pending orders",
		Description:  "Review and confirm every order that is still waiting on you.",
		Icon:         "clipboard-check",
		WhyItMatters: "Customers cancel when confirmation takes more than a few hours.",
		HowTo: []string{
			"Open the Orders screen",
			"Filter by 'Needs action'",
			"Confirm or cancel each order",
		},
		CTAText:   "Review orders",
		CTAAction: NavigateTo("orders"),
		Impact:    "Fast confirmation cuts cancellations roughly in half.",
		Tier:      TierDaily,
	},
	{
		ID:           TaskRespondMessages,
		Title:        "Reply to customer messages",
		Description:  "Answer every unread conversation before the end of the day.",
		Icon:         "message-circle",
		WhyItMatters: "An unanswered question is usually a lost sale.",
		HowTo: []string{
			"Open the Chat panel",
			"Work through the unread conversations",
		},
		CTAText:   "Open chat",
		CTAAction: NavigateTo("chat"),
		Impact:    "Merchants replying within an hour close 40% more conversations.",
		Tier:      TierDaily,
	},

	// --- weekly, recurring ---
	{
		ID:           TaskWeeklyHabit,
		Title:        "Keep your daily streak alive",
		Description:  "Finish your daily tasks seven days in a row.",
		Tags:         []TaskTag{TagHabit},
		Icon:         "flame",
		WhyItMatters: "Consistency is what turns a side project into a business.",
		CTAText:      "See today's tasks",
		CTAAction:    OpenView("guidance"),
		Impact:       "A weekly rhythm compounds: small daily wins add up.",
		Tier:         TierWeekly,
	},
	{
		ID:           TaskReviewAISuggests,
		Title:        "Review this week's AI suggestions",
		Description:  "Go through the assistant's suggestions and apply the ones that fit.",
		Tags:         []TaskTag{TagAISuggested},
		Icon:         "sparkles",
		WhyItMatters: "The assistant spots patterns in your sales you might miss.",
		HowTo: []string{
			"Open the Assistant panel",
			"Read this week's suggestions",
			"Mark this task done when you have been through them",
		},
		CTAText:      "Open assistant",
		CTAAction:    OpenView("assistant"),
		Impact:       "Merchants acting on suggestions grow faster than those who skip them.",
		AISuggestion: "Based on your recent sales, consider featuring your best seller this week.",
		Tier:         TierWeekly,
	},

	// --- weekly, first-time ---
	{
		ID:           TaskVerifyDAN,
		Title:        "Verify your DAN",
		Description:  "Verify your merchant identification number to unlock payouts.",
		Tags:         []TaskTag{TagFirstTime, TagImportant},
		Icon:         "badge-check",
		WhyItMatters: "Unverified stores cannot receive payouts.",
		HowTo: []string{
			"Open Settings",
			"Enter your DAN under 'Verification'",
			"Submit the verification form",
		},
		CTAText:   "Verify now",
		CTAAction: NavigateTo("settings"),
		Impact:    "Verification is required before your first payout.",
		Tier:      TierWeekly,
		ActionKey: "verify_dan",
	},
	{
		ID:           TaskAddPhone,
		Title:        "Add a contact phone",
		Description:  "Add a phone number so customers can reach you directly.",
		Tags:         []TaskTag{TagFirstTime},
		Icon:         "phone",
		WhyItMatters: "A reachable store is a trustworthy store.",
		HowTo: []string{
			"Open Settings",
			"Add your phone under 'Contact'",
		},
		CTAText:   "Add phone",
		CTAAction: NavigateTo("settings"),
		Impact:    "Stores with a visible phone number convert better.",
		Tier:      TierWeekly,
		ActionKey: "add_phone",
	},
	{
		ID:           TaskEnablePayment,
		Title:        "Enable online payments",
		Description:  "Connect a payment method so customers can pay at checkout.",
		Tags:         []TaskTag{TagFirstTime},
		Icon:         "credit-card",
		WhyItMatters: "Without payments enabled every order ends in a manual back-and-forth.",
		HowTo: []string{
			"Open Settings",
			"Pick a payment provider under 'Payments'",
			"Follow the provider's connection flow",
		},
		CTAText:   "Enable payments",
		CTAAction: NavigateTo("settings"),
		Impact:    "Online payment roughly doubles completed checkouts.",
		Tier:      TierWeekly,
		ActionKey: "enable_payment",
	},

	// --- monthly, recurring ---
	{
		ID:           TaskMonthlyHabit,
		Title:        "Build a monthly rhythm",
		Description:  "Keep your weekly streak going for four weeks straight.",
		Tags:         []TaskTag{TagHabit},
		Icon:         "calendar-heart",
		WhyItMatters: "Four consistent weeks is where the habit becomes the default.",
		CTAText:      "See this week",
		CTAAction:    OpenView("guidance"),
		Impact:       "A month of consistency is the strongest predictor of retention.",
		Tier:         TierMonthly,
	},
	{
		ID:           TaskReviewInsights,
		Title:        "Review your monthly performance",
		Description:  "Look at this month's sales, top products and busiest days.",
		Tags:         []TaskTag{TagInsight},
		Icon:         "chart-line",
		WhyItMatters: "You cannot improve what you never look at.",
		HowTo: []string{
			"Open the Insights panel",
			"Check revenue, orders and top products",
			"Mark this task done when you have been through it",
		},
		CTAText:   "Open insights",
		CTAAction: OpenView("insights"),
		Impact:    "A monthly review is where pricing and stock decisions come from.",
		Tier:      TierMonthly,
	},

	// --- monthly, first-time ---
	{
		ID:           TaskCompleteProfile,
		Title:        "Complete your store profile",
		Description:  "Fill in your store description, address and opening hours.",
		Tags:         []TaskTag{TagFirstTime, TagHowTo},
		Icon:         "store",
		WhyItMatters: "A complete profile ranks higher and looks more credible.",
		HowTo: []string{
			"Open Settings",
			"Fill every field under 'Store profile'",
			"Save",
		},
		CTAText:   "Complete profile",
		CTAAction: NavigateTo("settings"),
		Impact:    "Complete profiles get shown more often in discovery.",
		Tier:      TierMonthly,
		ActionKey: "complete_profile",
	},
	{
		ID:           TaskCustomizeStore,
		Title:        "Customize your storefront",
		Description:  "Pick a theme, upload a banner and make the store yours.",
		Tags:         []TaskTag{TagFirstTime},
		Icon:         "paintbrush",
		WhyItMatters: "A branded storefront is remembered; a default one is not.",
		HowTo: []string{
			"Open Settings",
			"Choose a theme under 'Appearance'",
			"Upload a banner image",
		},
		CTAText:   "Customize",
		CTAAction: NavigateTo("settings"),
		Impact:    "Customized storefronts see more repeat visits.",
		Tier:      TierMonthly,
		ActionKey: "customize_store",
	},
}

// Catalog returns all templates in declared order.
func Catalog() []TaskTemplate {
	out := make([]TaskTemplate, len(catalog))
	copy(out, catalog)
	return out
}

func TemplateByID(id string) (TaskTemplate, bool) {
	for _, t := range catalog {
		if t.ID == id {
			return t, true
		}
	}
	return TaskTemplate{}, false
}

// RecurringForTier returns the tier's recurring templates in declared order.
func RecurringForTier(tier Tier) []TaskTemplate {
	var out []TaskTemplate
	for _, t := range catalog {
		if t.Tier == tier && !t.IsFirstTime() {
			out = append(out, t)
		}
	}
	return out
}

// FirstTimeForTier returns the tier's one-time onboarding templates.
func FirstTimeForTier(tier Tier) []TaskTemplate {
	var out []TaskTemplate
	for _, t := range catalog {
		if t.Tier == tier && t.IsFirstTime() {
			out = append(out, t)
		}
	}
	return out
}
