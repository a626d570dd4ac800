// SPDX-License-Identifier: MPL-2.0

package main

import cmd "galaxy-importer/cmd/galaxy-importer"

func main() {
	cmd.Execute()
}
