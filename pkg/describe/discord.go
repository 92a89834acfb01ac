package describe

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// messageURLBase is the canonical web link prefix for Discord messages.
const messageURLBase = "https://discord.com/channels/"

// MessageURL builds the canonical link to a message. Direct messages have no
// guild and use "@me" in its place.
func MessageURL(guildID, channelID, messageID string) string {
	if guildID == "" {
		guildID = "@me"
	}
	return messageURLBase + guildID + "/" + channelID + "/" + messageID
}

// unwrapEvent returns the object a gateway event carries, so handlers can log
// the event value they were given. Events embed the object pointer as their
// first field (InteractionCreate, GuildMemberUpdate, MessageDelete, ...);
// role events nest it one level deeper in GuildRole.
func unwrapEvent(thing any) any {
	for range 3 {
		next, ok := unwrapOnce(thing)
		if !ok {
			break
		}
		thing = next
	}
	return thing
}

func unwrapOnce(thing any) (any, bool) {
	if gr, ok := thing.(*discordgo.GuildRole); ok {
		return orUndefined(gr.Role), true
	}

	rv := reflect.ValueOf(thing)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return thing, false
	}
	st := rv.Elem().Type()
	if !isPlatformType(st) || st.NumField() == 0 {
		return thing, false
	}
	f := st.Field(0)
	if !f.Anonymous || f.Type.Kind() != reflect.Pointer || f.Type.Elem().Kind() != reflect.Struct {
		return thing, false
	}
	inner := rv.Elem().Field(0)
	if inner.IsNil() {
		return undefinedRef{}, true
	}
	return inner.Interface(), true
}

func isPlatformType(t reflect.Type) bool {
	switch t.PkgPath() {
	case "github.com/bwmarrin/discordgo", "gopkg.in/telebot.v4":
		return true
	}
	return false
}

// platformString describes a Discord or Telegram struct no other case knows
// as "<Type> <ID>", or just "<Type>" when it has no ID field.
func platformString(thing any) (string, bool) {
	rv := reflect.ValueOf(thing)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || !isPlatformType(rv.Type()) {
		return "", false
	}
	name := rv.Type().Name()

	// Only a direct field: promoted ones may sit behind a nil pointer.
	sf, ok := rv.Type().FieldByName("ID")
	if !ok || len(sf.Index) != 1 {
		return name, true
	}
	id := rv.Field(sf.Index[0])
	switch id.Kind() {
	case reflect.String:
		if id.String() != "" {
			return name + " " + id.String(), true
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if id.Int() != 0 {
			return name + " " + strconv.FormatInt(id.Int(), 10), true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if id.Uint() != 0 {
			return name + " " + strconv.FormatUint(id.Uint(), 10), true
		}
	}
	return name, true
}

// undefinedRef stands in for an event wrapper with nothing inside.
type undefinedRef struct{}

func (undefinedRef) Describe() string { return Undefined }

func orUndefined[T any](p *T) any {
	if p == nil {
		return undefinedRef{}
	}
	return p
}

func isCommand(i *discordgo.Interaction) bool {
	return i.Type == discordgo.InteractionApplicationCommand ||
		i.Type == discordgo.InteractionApplicationCommandAutocomplete
}

// commandName is "<name> [<group>] [<subcommand>]", empty parts dropped.
func commandName(i *discordgo.Interaction) string {
	var data discordgo.ApplicationCommandInteractionData
	switch d := i.Data.(type) {
	case discordgo.ApplicationCommandInteractionData:
		data = d
	case *discordgo.ApplicationCommandInteractionData:
		if d != nil {
			data = *d
		}
	}

	parts := []string{data.Name}
	opts := data.Options
	if len(opts) > 0 && opts[0] != nil && opts[0].Type == discordgo.ApplicationCommandOptionSubCommandGroup {
		parts = append(parts, opts[0].Name)
		opts = opts[0].Options
	}
	if len(opts) > 0 && opts[0] != nil && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		parts = append(parts, opts[0].Name)
	}

	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func interactionString(i *discordgo.Interaction) string {
	switch d := i.Data.(type) {
	case discordgo.MessageComponentInteractionData:
		return componentKind(d.ComponentType) + ` "` + d.CustomID + `"`
	case *discordgo.MessageComponentInteractionData:
		if d != nil {
			return componentKind(d.ComponentType) + ` "` + d.CustomID + `"`
		}
	case discordgo.ModalSubmitInteractionData:
		return `Modal "` + d.CustomID + `"`
	case *discordgo.ModalSubmitInteractionData:
		if d != nil {
			return `Modal "` + d.CustomID + `"`
		}
	}
	return "Interaction " + i.ID
}

func componentKind(t discordgo.ComponentType) string {
	switch t {
	case discordgo.ButtonComponent:
		return "Button"
	case discordgo.SelectMenuComponent:
		return "SelectMenu"
	case discordgo.TextInputComponent:
		return "TextInput"
	case discordgo.UserSelectMenuComponent:
		return "UserSelect"
	case discordgo.RoleSelectMenuComponent:
		return "RoleSelect"
	case discordgo.MentionableSelectMenuComponent:
		return "MentionableSelect"
	case discordgo.ChannelSelectMenuComponent:
		return "ChannelSelect"
	default:
		return "Component"
	}
}

// interactionUser is the invoking user: the member's user in guilds, the
// plain user in DMs.
func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func guildString(guildID string) string {
	if guildID == "" {
		return Null
	}
	return "Guild " + guildID
}

func ban(user *discordgo.User, guildID string) string {
	return "Ban of " + Stringify(user) + " in " + guildString(guildID)
}

// memberString prints the member's user ID; members have no ID of their own.
func memberString(m *discordgo.Member) string {
	if m.User == nil {
		return "User " + Undefined
	}
	return "User " + m.User.ID
}

// emojiString prefers the stable custom emoji ID over its name. Built-in
// emoji only have a name, which is the emoji itself.
func emojiString(e *discordgo.Emoji) string {
	return firstNonEmpty(e.ID, e.Name)
}
