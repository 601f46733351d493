package main

import (
	"github.com/trezcool/sanaa/core"
	"github.com/trezcool/sanaa/storage/database"
)

func (cli *commandLine) migrate() error {
	return database.Migrate(cli.db, core.Conf)
}
