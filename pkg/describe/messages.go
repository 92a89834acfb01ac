package describe

import (
	"regexp"

	"github.com/bwmarrin/discordgo"
	tele "gopkg.in/telebot.v4"
)

// Redacted replaces sensitive config values in StartupMsg.
const Redacted = "<REDACTED>"

// redactedKeys matches config keys whose values must never reach a log.
var redactedKeys = regexp.MustCompile(`(?i)password|secret|token`)

// LoginMsg is the standard line for the account the bot signed in as. It is
// the bot's own account, so its tag is printed along with the ID.
func LoginMsg(me any) string {
	switch u := me.(type) {
	case *discordgo.User:
		if u != nil {
			return "Logged in as " + u.String() + " (" + u.ID + ")"
		}
	case *tele.User:
		if u != nil {
			return "Logged in as @" + u.Username + " (" + itoa(u.ID) + ")"
		}
	}
	return "Logged in as " + Stringify(me)
}

// StartupMsg is the standard line for a bot starting up, with its config
// (sensitive keys redacted) when one is given.
func StartupMsg(version string, config map[string]any) string {
	msg := "Bot is starting version " + version
	if config == nil {
		return msg
	}

	scrubbed := make(map[string]any, len(config))
	for k, v := range config {
		if redactedKeys.MatchString(k) {
			scrubbed[k] = Redacted
			continue
		}
		scrubbed[k] = v
	}

	return msg + " with config " + marshal(scrubbed)
}
