// Command ifuderive derives black-hole masses, enclosed masses and
// densities from emission-line measurements recorded in a target file.
//
// Usage:
//
//	ifuderive derive -f target.yaml [--format pretty|json|cbor] [--save]
//	ifuderive validate -f target.toml
//	ifuderive convert <value> <from-unit> <to-unit> [--doppler-rest "4.861 um"] [--distance "13.3 Mpc"]
//	ifuderive history [-n 20]
//	ifuderive show <run-id>
//
// A .env file in the working directory, if present, is loaded first so
// IFUDERIVE_TARGET, IFUDERIVE_STORE and IFUDERIVE_DEBUG can be set there.
package main

import (
	"github.com/joho/godotenv"

	"github.com/javerbukh/jwebbinar-prep/internal/cli"
)

func main() {
	_ = godotenv.Load()

	cli.Execute()
}
