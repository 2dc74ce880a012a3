// Package models defines the anime record shared by the store, the CLI and the TUI.
//
// The package contains three groups of types:
//
// 1. Wire types exchanged with the store over REST
//   - [Anime] : a tracked series with progress, platform and schedule metadata
//   - [Draft] : the writable fields of an [Anime], the body of create and update requests
//   - [TodayResponse] : the payload of the "today" endpoint
//
// 2. Enumerations stored as their display labels
//   - [Status] : 追番中 / 已完结 / 暂停
//   - [Weekday] : 周一 … 周日, the day a series releases a new episode
//   - known platforms, plus the [PlatformOther] sentinel
//
// 3. [Form] : the mutable draft behind the creation form and the edit modal. It carries a CustomPlatform side field
// that replaces the platform on submit when the platform is [PlatformOther].
package models
