// Package describe turns chat platform objects into short, log-friendly strings.
//
// Stringify is the workhorse: it recognises Discord (discordgo) and Telegram
// (telebot) objects and prints them by kind and ID only, so logs never carry
// display names or message content. Detail adds one level of context for
// commands and reactions. Anything unrecognised is JSON encoded.
//
//	log.Info("Handled " + describe.Detail(i))
//	// Handled Guild 1028556214147223623 User 1028556214147223624 Command "config set"
package describe
