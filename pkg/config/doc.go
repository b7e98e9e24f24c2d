// Package config loads srcbundle settings. Values come from an embedded
// defaults file overlaid with user, project, .env, environment and explicit
// files, merged with koanf and decoded into Config.
package config
