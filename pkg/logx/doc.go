// Package logx is eybot's logging layer on top of zerolog.
//
// Console output is human-readable with a short caller; the optional log
// file gets JSON lines; WARN and above can also be forwarded, rate-limited,
// to an admin Telegram chat (telegram.group_log). Outputs and levels follow
// config reloads through Service.Apply.
package logx
