// Package config provides rule configuration management for the Klondike game server.
//
// The config package handles:
//   - Loading rule configurations from JSON files
//   - Validation through engine.ValidateGameConfig
//   - Default configuration selection
//   - Configuration discovery, listing and saving
//
// Configuration Format:
//
// Configurations are stored as <id>.json files in the configs directory.
// Each configuration defines:
//   - Points awarded per foundation card and per draw
//   - Whether moved runs must be fully alternating and descending
//   - An optional fixed shuffle seed
//   - Player-facing messages (the victory message formats the final score)
//
// Shipped Configurations:
//   - classic: one-card draw, 10 points per foundation card
//   - strict: classic scoring with strict run validation
//   - vegas: draws cost a point, foundation cards pay 5
//   - practice: fixed seed, every session starts from the same deal
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("vegas")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
//
// The default is classic.json when present, otherwise the first valid file,
// otherwise engine.DefaultConfig.
package config
