package voice

// category is a named keyword list. Keywords may be phrases; matching is on
// whole words, case-insensitive.
type category struct {
	name     string
	keywords []string
}

// Declaration order matters: ties go to the earlier category
var toneCategories = []category{
	{"professional", []string{
		"professional", "solution", "solutions", "business", "enterprise", "efficient", "efficiency",
		"quality", "service", "services", "expertise", "strategy", "performance", "results", "optimize",
	}},
	{"friendly", []string{
		"friendly", "welcome", "happy", "help", "love", "together", "enjoy", "easy", "thanks",
		"thank you", "hello", "hi", "glad", "warm",
	}},
	{"authoritative", []string{
		"trusted", "proven", "industry", "leader", "leaders", "expert", "experts", "leading",
		"established", "certified", "authority", "world-class", "standard", "recognized",
	}},
	{"formal", []string{
		"hereby", "therefore", "accordingly", "pursuant", "regarding", "furthermore", "moreover",
		"shall", "respectfully", "whereas", "herein", "sincerely",
	}},
	{"casual", []string{
		"hey", "awesome", "cool", "stuff", "super", "pretty", "gonna", "yeah", "totally", "folks",
		"kinda", "chill",
	}},
	{"playful", []string{
		"fun", "play", "magic", "magical", "delight", "delightful", "wow", "yay", "adventure",
		"playful", "whimsical", "joy", "oops",
	}},
	{"urgent", []string{
		"now", "today", "hurry", "limited", "immediately", "instant", "deadline", "last chance",
		"don't miss", "act now", "ends soon", "urgent",
	}},
}

var traitCategories = []category{
	{"innovative", []string{
		"innovative", "innovation", "cutting-edge", "new", "future", "modern", "breakthrough",
		"pioneering", "next-generation", "ai", "smart",
	}},
	{"reliable", []string{
		"reliable", "reliability", "secure", "security", "stable", "dependable", "trusted",
		"uptime", "consistent", "guarantee", "guaranteed", "safe",
	}},
	{"friendly", []string{
		"friendly", "welcome", "together", "community", "help", "support", "happy", "easy",
	}},
	{"sophisticated", []string{
		"sophisticated", "premium", "elegant", "luxury", "refined", "exclusive", "curated",
		"crafted", "bespoke",
	}},
	{"bold", []string{
		"bold", "powerful", "fearless", "disrupt", "revolutionary", "ambitious", "unstoppable",
		"transform", "radical",
	}},
	{"caring", []string{
		"care", "caring", "wellbeing", "well-being", "compassion", "family", "health", "people",
		"support", "kind",
	}},
	{"playful", []string{
		"fun", "play", "playful", "joy", "delight", "colorful", "quirky", "magic",
	}},
	{"practical", []string{
		"simple", "practical", "efficient", "affordable", "straightforward", "easy", "fast",
		"productive", "save", "quick",
	}},
}

var audienceCategories = []category{
	{"business", []string{
		"business", "businesses", "enterprise", "teams", "company", "companies", "roi", "b2b",
		"revenue", "clients", "organization", "organizations", "sales",
	}},
	{"consumer", []string{
		"you", "your", "family", "home", "shop", "buy", "personal", "lifestyle", "everyday",
		"friends", "free shipping",
	}},
	{"technical", []string{
		"api", "developer", "developers", "sdk", "integration", "integrations", "code", "documentation",
		"docs", "infrastructure", "deploy", "open source", "cli", "webhook", "webhooks",
	}},
	{"creative", []string{
		"design", "designer", "designers", "creative", "creators", "art", "portfolio", "inspiration",
		"studio", "brand", "visual",
	}},
	{"educational", []string{
		"learn", "learning", "students", "student", "course", "courses", "education", "teachers",
		"school", "training", "tutorial", "tutorials",
	}},
}

var themeCategories = []category{
	{"innovation", []string{"innovation", "innovative", "new", "future", "ai", "modern", "cutting-edge"}},
	{"quality", []string{"quality", "best", "premium", "excellence", "crafted", "reliable"}},
	{"customer", []string{"customer", "customers", "you", "your", "support", "service", "clients"}},
	{"growth", []string{"grow", "growth", "scale", "scaling", "revenue", "increase", "boost"}},
	{"security", []string{"secure", "security", "privacy", "compliance", "gdpr", "encrypted", "safe"}},
	{"simplicity", []string{"simple", "easy", "effortless", "intuitive", "no-code", "seamless", "minutes"}},
	{"sustainability", []string{"sustainable", "sustainability", "green", "planet", "climate", "carbon", "eco"}},
	{"community", []string{"community", "together", "join", "members", "network", "people"}},
}

// AudienceUnknown is reported when no audience keyword occurs
const AudienceUnknown = "general"

var (
	firstPersonPlural = []string{"we", "our", "us", "ours", "we're", "we've", "we'll"}
	secondPerson      = []string{"you", "your", "yours", "you're", "you've", "you'll", "yourself"}

	callToActionPhrases = []string{
		"get started", "sign up", "start free", "try", "try it", "contact us", "learn more", "book a demo",
		"request a demo", "join", "subscribe", "download", "buy now", "shop now", "get in touch",
	}

	benefitKeywords = []string{
		"save", "saves", "faster", "easier", "better", "improve", "improves", "grow", "boost",
		"reduce", "increase", "benefit", "benefits", "results", "effortless",
	}
	featureKeywords = []string{
		"feature", "features", "integration", "integrations", "dashboard", "api", "analytics",
		"tool", "tools", "platform", "automation", "template", "templates", "customizable",
	}
	socialProofKeywords = []string{
		"customers", "trusted by", "reviews", "rated", "testimonials", "used by", "loved by",
		"companies", "stars", "award", "award-winning", "case study",
	}
	urgencyKeywords = []string{
		"now", "today", "limited", "hurry", "last chance", "deadline", "ends", "soon", "only",
	}
)

// stopWords are excluded from the vocabulary table
var stopWords = map[string]bool{
	"about": true, "above": true, "after": true, "again": true, "against": true, "also": true,
	"because": true, "been": true, "before": true, "being": true, "below": true, "between": true,
	"both": true, "could": true, "does": true, "doing": true, "down": true, "during": true,
	"each": true, "every": true, "from": true, "further": true, "have": true, "having": true,
	"here": true, "hers": true, "herself": true, "himself": true, "into": true, "itself": true,
	"just": true, "more": true, "most": true, "myself": true, "once": true, "only": true,
	"other": true, "ours": true, "ourselves": true, "over": true, "same": true, "should": true,
	"some": true, "such": true, "than": true, "that": true, "their": true, "theirs": true,
	"them": true, "themselves": true, "then": true, "there": true, "these": true, "they": true,
	"this": true, "those": true, "through": true, "under": true, "until": true, "very": true,
	"were": true, "what": true, "when": true, "where": true, "which": true, "while": true,
	"will": true, "with": true, "would": true, "your": true, "yours": true, "yourself": true,
	"yourselves": true, "you're": true, "we're": true, "it's": true, "don't": true, "can't": true,
	"like": true, "make": true, "many": true, "much": true, "need": true, "well": true,
}
