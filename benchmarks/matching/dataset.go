// ABOUTME: Labeled FAQ corpora and paraphrased queries for matching benchmarks
// ABOUTME: Each query names the FAQ it should hit, or NoMatch when the AI should answer

package matching

// NoMatch marks a query that should fall through to the AI
const NoMatch = -1

// Scenario is one corpus plus queries labeled with the expected FAQ
type Scenario struct {
	ID          string
	Name        string
	Description string
	FAQs        []Entry
	Queries     []LabeledQuery
}

// Entry is a question/answer pair loaded into the corpus
type Entry struct {
	Question string
	Answer   string
}

// LabeledQuery is a user query with the index of the FAQ it should match
type LabeledQuery struct {
	Query  string
	Expect int
}

// Scenarios returns every built-in scenario
func Scenarios() []Scenario {
	return []Scenario{
		CustomerSupport(),
		Banking(),
	}
}

// ScenarioByID looks up a built-in scenario
func ScenarioByID(id string) (Scenario, bool) {
	for _, s := range Scenarios() {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

// CustomerSupport is a small e-commerce help desk
func CustomerSupport() Scenario {
	return Scenario{
		ID:          "support",
		Name:        "E-commerce customer support",
		Description: "Order, shipping and account questions with paraphrases and off-topic chatter",
		FAQs: []Entry{
			{"How do I reset my password?", "Use the 'Forgot password' link on the sign-in page."},
			{"What are your opening hours?", "We are open 9am to 5pm, Monday to Friday."},
			{"How long does shipping take?", "Standard shipping takes 3 to 5 business days."},
			{"Can I return an item?", "Items can be returned within 30 days of delivery."},
			{"Do you ship internationally?", "Yes, we ship to over 40 countries."},
			{"How do I track my order?", "Use the tracking link in your confirmation email."},
			{"Which payment methods do you accept?", "We accept cards, PayPal and bank transfer."},
		},
		Queries: []LabeledQuery{
			{"how do i reset my password", 0},
			{"forgot my password, need to reset it", 0},
			{"opening hours?", 1},
			{"what hours are you open", 1},
			{"shipping take long?", 2},
			{"how many days does shipping take", 2},
			{"return an item I bought", 3},
			{"do you ship internationally to canada", 4},
			{"track order", 5},
			{"where can I track my order", 5},
			{"payment methods accepted", 6},
			{"tell me a joke", NoMatch},
			{"what is the weather like today", NoMatch},
			{"who won the football match", NoMatch},
		},
	}
}

// Banking mixes overlapping vocabulary so thresholds matter
func Banking() Scenario {
	return Scenario{
		ID:          "banking",
		Name:        "Retail banking",
		Description: "Card and account questions that share terms, plus unrelated queries",
		FAQs: []Entry{
			{"How do I block my card?", "Block it instantly in the app under Cards."},
			{"How do I order a new card?", "Order a replacement card in the app under Cards."},
			{"What is my account number?", "Your account number is shown on the Accounts screen."},
			{"How do I open a savings account?", "Open a savings account from the Accounts screen."},
			{"What are the transfer limits?", "Daily transfer limits are 10,000 EUR."},
			{"How do I change my PIN?", "Change your PIN at any ATM or in the app."},
		},
		Queries: []LabeledQuery{
			{"block card", 0},
			{"I lost my card, how do I block it", 0},
			{"order new card", 1},
			{"where do I find my account number", 2},
			{"open savings account", 3},
			{"transfer limits per day", 4},
			{"change PIN", 5},
			{"how do I change my card PIN", 5},
			{"mortgage interest rates", NoMatch},
			{"is the branch open on sunday", NoMatch},
		},
	}
}
