package main

import (
	"errors"
	"log"

	"assistbot/bot/app"
	"assistbot/bot/config"
	"assistbot/core/buildinfo"
	"assistbot/core/cmd"
)

var errUnexpectedConfig = errors.New("unexpected config carrier type")

func main() {
	log.Printf("assistbot %s (%s)", buildinfo.Version, buildinfo.Commit)

	err := cmd.Run(cmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig: func(path string) (cmd.ConfigCarrier, error) {
			return config.Load(path)
		},
		Bootstrap: func(carrier cmd.ConfigCarrier) (cmd.TelegramApp, error) {
			cfg, ok := carrier.(*config.Config)
			if !ok {
				return nil, errUnexpectedConfig
			}
			return app.Bootstrap(cfg)
		},
	})
	if err != nil {
		log.Fatalf("assistbot: %v", err)
	}
}
