package responder

import (
	"fmt"
	"regexp"
)

// Category names the rule that produced a reply.
type Category string

// Rule names, in priority order.
const (
	CategoryGreeting   Category = "greeting"
	CategoryHowAreYou  Category = "how_are_you"
	CategoryIdentity   Category = "identity"
	CategoryArithmetic Category = "arithmetic"
	CategoryTime       Category = "time"
	CategoryDate       Category = "date"
	CategoryHelp       Category = "help"
	CategoryThanks     Category = "thanks"
	CategoryFarewell   Category = "farewell"
	CategoryWeather    Category = "weather"
	CategoryJoke       Category = "joke"
	CategoryPurpose    Category = "purpose"
	CategoryFallback   Category = "fallback"
)

const (
	greetingReply  = "Hello! I'm a simple AI agent. How can I help you today?"
	howAreYouReply = "I'm functioning perfectly! Thanks for asking. What can I do for you?"
	identityReply  = "I'm a Simple AI Agent, created to demonstrate basic conversational AI capabilities. I can answer questions, help with tasks, and have conversations!"
	helpReply      = "I can help you with:\n" +
		"- Simple math calculations (e.g., '5 + 3')\n" +
		"- Tell you the current time and date\n" +
		"- Answer basic questions\n" +
		"- Have a conversation\n" +
		"- Provide information on various topics\n" +
		"\n" +
		"Just ask me anything!"
	thanksReply   = "You're welcome! Let me know if you need anything else."
	farewellReply = "Goodbye! Have a great day!"
	weatherReply  = "I don't have real-time weather data, but I can tell you it's always sunny in the digital world! 🌞"
	purposeReply  = "The meaning of life is a profound question! While I can't give you a definitive answer, I can say that many find purpose in connections, growth, and making a positive impact."
)

// Jokes is the fixed candidate set for joke requests.
var Jokes = []string{
	"Why did the AI go to school? To improve its neural network!",
	"What do you call an AI that sings? A-Dell!",
	"Why did the programmer quit? Because they didn't get arrays!",
	"How do robots eat guacamole? With computer chips!",
}

// fallbackTemplates each take the original message once, via %s.
var fallbackTemplates = []string{
	`That's an interesting point about "%s". Could you tell me more?`,
	`I understand you're asking about "%s". While I'm a simple agent, I'm here to help!`,
	`Thanks for sharing that! Regarding "%s", I'd be happy to discuss it further.`,
	`That's a great question! While my knowledge is limited, I'll do my best to help with "%s".`,
	`I'm processing your message about "%s". Is there a specific aspect you'd like to explore?`,
}

// FallbackReplies renders every fallback template for message, in order.
func FallbackReplies(message string) []string {
	out := make([]string, len(fallbackTemplates))
	for i, tmpl := range fallbackTemplates {
		out[i] = fmt.Sprintf(tmpl, message)
	}
	return out
}

// replyFunc builds a reply. original is the untouched input and match holds
// the submatches found in the lowercased input.
type replyFunc func(r *Responder, original string, match []string) string

type rule struct {
	category Category
	pattern  *regexp.Regexp
	reply    replyFunc
}

func fixed(s string) replyFunc {
	return func(*Responder, string, []string) string { return s }
}

// rules is evaluated top to bottom; the first match wins.
var rules = []rule{
	{CategoryGreeting, regexp.MustCompile(`^(hi|hello|hey|greetings)`), fixed(greetingReply)},
	{CategoryHowAreYou, regexp.MustCompile(`(how are you|how do you do)`), fixed(howAreYouReply)},
	{CategoryIdentity, regexp.MustCompile(`(what's your name|who are you|your name)`), fixed(identityReply)},
	{CategoryArithmetic, regexp.MustCompile(`(\d+)\s*([+\-*/])\s*(\d+)`), func(_ *Responder, _ string, m []string) string {
		return "The result is: " + evaluate(m[1], m[2], m[3])
	}},
	{CategoryTime, regexp.MustCompile(`(what time|current time|time now)`), func(r *Responder, _ string, _ []string) string {
		return "The current time is: " + r.now().Format("3:04:05 PM")
	}},
	{CategoryDate, regexp.MustCompile(`(what date|today's date|current date)`), func(r *Responder, _ string, _ []string) string {
		return "Today's date is: " + r.now().Format("1/2/2006")
	}},
	{CategoryHelp, regexp.MustCompile(`(help|what can you do|capabilities)`), fixed(helpReply)},
	{CategoryThanks, regexp.MustCompile(`(thank|thanks|appreciate)`), fixed(thanksReply)},
	{CategoryFarewell, regexp.MustCompile(`(bye|goodbye|see you|farewell)`), fixed(farewellReply)},
	{CategoryWeather, regexp.MustCompile(`weather`), fixed(weatherReply)},
	{CategoryJoke, regexp.MustCompile(`(tell.*joke|joke|funny)`), func(r *Responder, _ string, _ []string) string {
		return pick(r.picker, Jokes)
	}},
	{CategoryPurpose, regexp.MustCompile(`(meaning of life|purpose|why are we here)`), fixed(purposeReply)},
}
