package web

// StartURL is where every call to action on the page points.
const StartURL = "https://trezor.io/start"

type Feature struct {
	Icon        string
	Title       string
	Description string
}

type Step struct {
	Title string
	// Body is rendered after the optional link to StartURL.
	Body     string
	LinkLead string
}

type Bullet struct {
	Icon string
	Text string
}

type BulletList struct {
	Title string
	Items []Bullet
}

type Content struct {
	Title       string
	Headline    string
	Intro       string
	Overview    []Feature
	Core        []Feature
	Steps       []Step
	Security    []BulletList
	Audiences   []BulletList
	CTAHeadline string
	CTAText     string
	CTAButton   string
	StartURL    string
	Bubbles     []Bubble
}

// Bubble is one decorative background circle. Positions are percentages.
type Bubble struct {
	Left     int
	Top      int
	Duration int
}

var glyphs = map[string]string{
	"shield":     "⛨",
	"zap":        "⚡",
	"globe":      "◎",
	"key":        "⚿",
	"refresh":    "↻",
	"users":      "⚇",
	"cpu":        "▣",
	"settings":   "⚙",
	"smartphone": "▯",
	"lock":       "▤",
	"arrow":      "→",
}

func pageContent() Content {
	return Content{
		Title:    "Trezor Suite: The Future of Crypto Security",
		Headline: "Trezor Suite: The Future of Crypto Security",
		Intro: "Trezor Suite represents the next evolution in cryptocurrency management and security. " +
			"It's not just a wallet interface, it's a complete cryptocurrency command center that combines " +
			"military-grade security with an intuitive user experience. The Suite transforms how you interact " +
			"with your digital assets, making complex cryptocurrency operations accessible while maintaining " +
			"the highest security standards.",
		Overview: []Feature{
			{"shield", "Uncompromising Security", "Your private keys never leave your Trezor device, ensuring complete protection of your digital assets with military-grade encryption."},
			{"zap", "Lightning Fast", "Experience instant transactions and real-time portfolio updates with Trezor Suite's optimized performance."},
			{"globe", "Universal Access", "Manage your crypto assets from anywhere in the world with Trezor Suite's cross-platform compatibility."},
		},
		Core: []Feature{
			{"key", "Advanced Security", "Multi-factor authentication, encrypted backup, and secure chip technology protect your assets."},
			{"refresh", "Real-Time Updates", "Live market data, instant transaction notifications, and automatic firmware updates."},
			{"users", "Multi-Account Support", "Manage multiple cryptocurrency accounts with distinct security policies and access controls."},
			{"cpu", "Hardware Integration", "Seamless connection with Trezor hardware wallets for maximum security and convenience."},
			{"settings", "Custom Configuration", "Personalize security settings, transaction limits, and notification preferences."},
			{"smartphone", "Mobile Compatibility", "Access your portfolio on the go with full mobile device support and synchronization."},
		},
		Steps: []Step{
			{Title: "Download and Install", LinkLead: "Visit", Body: "to download the latest version of Trezor Suite for your operating system."},
			{Title: "Connect Your Device", Body: "Connect your Trezor hardware wallet to your computer using the provided USB cable."},
			{Title: "Initial Setup", Body: "Follow the on-screen instructions to set up your device and create your wallet."},
			{Title: "Secure Your Recovery Seed", Body: "Write down your recovery seed phrase and store it in a safe place. Never store it digitally or share it with anyone."},
		},
		Security: []BulletList{
			{Title: "Hardware Security", Items: []Bullet{
				{"shield", "Secure Element Chip"},
				{"lock", "PIN Protection"},
				{"key", "Offline Private Keys"},
			}},
			{Title: "Software Security", Items: []Bullet{
				{"refresh", "Automatic Updates"},
				{"users", "Multi-Signature Support"},
				{"settings", "Custom Security Policies"},
			}},
		},
		Audiences: []BulletList{
			{Title: "For Beginners", Items: []Bullet{
				{"arrow", "Intuitive interface designed for easy navigation"},
				{"arrow", "Step-by-step guides for all major operations"},
				{"arrow", "24/7 customer support and extensive documentation"},
			}},
			{Title: "For Advanced Users", Items: []Bullet{
				{"arrow", "Advanced trading features and custom scripts"},
				{"arrow", "API integration capabilities"},
				{"arrow", "Multiple account types and security levels"},
			}},
		},
		CTAHeadline: "Ready to Secure Your Digital Assets?",
		CTAText:     "Start your journey to secure cryptocurrency management today at",
		CTAButton:   "Get Started Now",
		StartURL:    StartURL,
		Bubbles:     bubbles(20),
	}
}

// bubbles spreads n circles over the page. The layout is deterministic so
// every request gets the same markup.
func bubbles(n int) []Bubble {
	out := make([]Bubble, n)
	for i := range out {
		out[i] = Bubble{
			Left:     (i*37 + 11) % 100,
			Top:      (i*53 + 7) % 100,
			Duration: 5 + (i*7)%5,
		}
	}
	return out
}
