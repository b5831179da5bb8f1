package models

type EnvConfig struct {
	CookiesDirectory string

	HTTPSProxy string
	HTTPProxy  string
	NoProxy    string

	LogLevel string
}
