package migrations

import "embed"

// FS holds the migration sources so goose can index the registered Go
// migrations without a migrations directory on disk.
//
//go:embed *.go
var FS embed.FS

// Settings carries the values seed migrations need from the process config.
type Settings struct {
	OwnerMobile   string
	OwnerPassword string
	BcryptCost    int
}

var settings = Settings{BcryptCost: 12}

func Configure(s Settings) {
	if s.BcryptCost == 0 {
		s.BcryptCost = 12
	}
	settings = s
}
