package main

import (
	"hrms.io/infrastructure"
	"hrms.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
