package intent

// The canned greeting replies, one per supported locale, live in a single
// data table so that adding a language is a data change, not a new handler.
// Each reply is a greeting plus the same two chips (tickets, language) in
// that language.

// DefaultLocale keys the fallback reply used for unknown intents and for
// any locale missing from the table.
const DefaultLocale = "default"

type localeReply struct {
	Greeting string
	Chips    []string
}

var localeReplies = map[string]localeReply{
	"hindi": {
		Greeting: "मैं आपकी किस प्रकार मदद कर सकता हूँ?",
		Chips:    []string{"टिकट", "भाषा"},
	},
	"marathi": {
		Greeting: "मी तुम्हाला कसे मदत करू शकतो?",
		Chips:    []string{"तिकिटे", "भाषा"},
	},
	"bengali": {
		Greeting: "কিভাবে আমি আপনাকে সাহায্য করতে পারি?",
		Chips:    []string{"টিকেট", "ভাষা"},
	},
	"tamil": {
		Greeting: "நான் உங்களுக்கு எப்படி உதவ முடியும்?",
		Chips:    []string{"டிக்கெட்டுகள்", "மொழி"},
	},
	"telugu": {
		Greeting: "నేను మీకు ఎలా సహాయపడగలను?",
		Chips:    []string{"టిక్కెట్లు", "భాష"},
	},
	DefaultLocale: {
		Greeting: "I didn't understand.",
		Chips:    []string{"Tickets", "Language"},
	},
}

// LocaleReply renders the canned reply for a locale.  Unknown locales fall
// back to the default reply.  The function is pure: identical input always
// produces an identical response.
func LocaleReply(locale string) *Response {
	reply, ok := localeReplies[locale]
	if !ok {
		reply = localeReplies[DefaultLocale]
	}
	return ChipsResponse(reply.Greeting, reply.Chips...)
}

// Locales lists every locale present in the reply table, default included.
func Locales() []string {
	out := make([]string, 0, len(localeReplies))
	for k := range localeReplies {
		out = append(out, k)
	}
	return out
}
