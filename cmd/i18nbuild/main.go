// Command i18nbuild resolves the i18n configuration of an Angular workspace build.
package main

import "github.com/nimburion/i18nbuild/pkg/cli"

func main() {
	cli.Execute(cli.NewRootCommand(cli.CommandOptions{}))
}
