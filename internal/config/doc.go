// Package config loads runtime settings from the environment and an
// optional .env file.
//
// All credential material (the Telegram bot token, the chat ID) is owned
// by the deployment environment; this package only reads it and hands
// out opaque values.
package config
