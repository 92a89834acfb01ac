package describe

import (
	"math/big"
	"reflect"
	"strings"

	"github.com/bwmarrin/discordgo"
	json "github.com/goccy/go-json"
	tele "gopkg.in/telebot.v4"
)

const (
	// Null is printed for a nil value.
	Null = "[null]"
	// Undefined is printed for a nil reference to a known object, such as a
	// member that was never populated.
	Undefined = "[undefined]"
	// MissingNo is printed when a value can't be serialized.
	MissingNo = "[MissingNo.]"
)

// Describer lets application types choose their own log representation.
// Implementations should print IDs, never names or content.
type Describer interface {
	Describe() string
}

// Stringify returns a single-line description of thing. Arrays and slices are
// described element by element and joined with ", ".
//
// Only IDs are printed for people and their content.
func Stringify(thing any) string {
	if thing == nil {
		return Null
	}
	if isNilRef(thing) {
		return Undefined
	}
	thing = unwrapEvent(addressable(thing))
	if d, ok := thing.(Describer); ok {
		return d.Describe()
	}

	switch v := thing.(type) {
	case *discordgo.Application:
		return "Application " + v.ID
	case *discordgo.Channel:
		return "Channel " + v.ID
	case *tele.Chat:
		return "Channel " + itoa(v.ID)
	}

	if i, ok := thing.(*discordgo.Interaction); ok && isCommand(i) {
		return `Command "` + commandName(i) + `"`
	}

	switch v := thing.(type) {
	case *discordgo.Guild:
		return "Guild " + v.ID
	case *discordgo.UserGuild:
		return "Guild " + v.ID
	case *discordgo.GuildBanAdd:
		return ban(v.User, v.GuildID)
	case *discordgo.GuildBanRemove:
		return ban(v.User, v.GuildID)
	case *discordgo.GuildBan:
		return "Ban of " + Stringify(v.User) + " in " + Undefined
	case *discordgo.Member:
		return memberString(v)
	case *discordgo.Message:
		return "Message " + MessageURL(v.GuildID, v.ChannelID, v.ID)
	case *tele.Message:
		return "Message " + telegramMessageRef(v)
	case *discordgo.Interaction:
		return interactionString(v)
	case *tele.Callback:
		return `Button "` + callbackID(v) + `"`
	case *discordgo.MessageReaction:
		return "Reaction " + emojiString(&v.Emoji)
	case *discordgo.Role:
		return "Role " + v.ID
	case *discordgo.User:
		return "User " + v.ID
	case *tele.User:
		return "User " + itoa(v.ID)
	case *discordgo.Emoji:
		return "Emoji " + emojiString(v)
	case *discordgo.ComponentEmoji:
		return "Emoji " + firstNonEmpty(v.ID, v.Name)
	case string:
		if IsEmoji(v) {
			return "Emoji " + v
		}
	}

	if s, ok := stringifyList(thing); ok {
		return s
	}

	switch v := thing.(type) {
	case *big.Int:
		return v.String()
	case string:
		return v
	}

	// Platform objects not matched above still print no more than an ID.
	if s, ok := platformString(thing); ok {
		return s
	}

	// numbers, times, maps, structs, etc...
	return marshal(thing)
}

// marshal JSON encodes v, or returns MissingNo when it can't. Encoder
// panics count as failures.
func marshal(v any) (s string) {
	defer func() {
		if recover() != nil {
			s = MissingNo
		}
	}()
	b, err := json.Marshal(v)
	if err != nil {
		return MissingNo
	}
	return string(b)
}

// Detail is like Stringify but adds the surrounding context for commands
// (guild and invoking user) and reactions (the message reacted to).
func Detail(thing any) string {
	if thing == nil || isNilRef(thing) {
		return Stringify(thing)
	}
	thing = unwrapEvent(addressable(thing))

	switch v := thing.(type) {
	case *discordgo.Application:
		// Applications are bots; their name is not personal data.
		return `Application "` + v.Name + `" (` + v.ID + `)`
	case *discordgo.Interaction:
		if isCommand(v) {
			return guildString(v.GuildID) + " " + Stringify(interactionUser(v)) + " " + Stringify(v)
		}
	case *discordgo.MessageReaction:
		return Stringify(v) + " on Message " + MessageURL(v.GuildID, v.ChannelID, v.MessageID)
	case *tele.Message:
		return Stringify(v.Chat) + " " + Stringify(v.Sender) + " " + Stringify(v)
	}
	return Stringify(thing)
}

func stringifyList(thing any) (string, bool) {
	rv := reflect.ValueOf(thing)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return "", false
	}
	parts := make([]string, rv.Len())
	for i := range parts {
		parts[i] = Stringify(rv.Index(i).Interface())
	}
	return strings.Join(parts, ", "), true
}

// addressable turns a struct value into a pointer to a copy, so values and
// pointers of the same type are described alike.
func addressable(thing any) any {
	rv := reflect.ValueOf(thing)
	if rv.Kind() != reflect.Struct {
		return thing
	}
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	return p.Interface()
}

// isNilRef reports whether thing is a typed nil pointer.
func isNilRef(thing any) bool {
	rv := reflect.ValueOf(thing)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
