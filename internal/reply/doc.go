// Package reply decides whether an incoming chat message deserves one or
// more canned answers.
//
// A Replier owns four rule evaluators and runs them in order for every
// message:
//   - ResurrectionMessenger: "back alive" notice, once per chat (off by default)
//   - Echoer: repeats a known word found at the start of the text
//   - Clapbacker: fixed retort when the bot is mentioned together with a trigger word
//   - EyOfTheDayer: fixed greeting once per day-of-month
//
// Evaluators keep their small state (notified chats, last day) as fields and
// guard it with a mutex, so a Replier may be shared by concurrent dispatch
// workers.
package reply
