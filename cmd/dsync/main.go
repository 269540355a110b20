// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command dsync syncs one or more source trees into a destination
// directory. Grounded on original_source/dsync.c.
package main

import (
	"flag"
	"fmt"
	"os"

	"code.hybscloud.com/dsync/internal/orchestrator"
)

const usageText = `Usage: dsync [OPTION]... SOURCE... DIRECTORY
Sync/copy SOURCE(s) to DIRECTORY.

  -f       force copy SOURCE(s) to DIRECTORY even if they are in sync
  -j N     run N (max 255) goroutines that sync/copy source files

By default (without the -f option), dsync will copy SOURCE(s) to DIRECTORY only
if the files' size and modification time don't match (even if file in destination
is newer than the corresponding source file). If SOURCE(s) themselves are symbolic
links they will be resolved to their actual paths. dsync always preserves mode and
timestamps. Multiple goroutines can be used to sync/copy using the -j option which
can reduce total time in case of source directories with a lot of directories
and a lot of small files in them. dsync always recursively syncs/copies all the
contents of the given sources. Symbolic links inside SOURCE(s) are not followed
but copied themselves. Extra directories or files in destination directory are
not detected or deleted. dsync doesn't make sure data is written to disk.
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	for _, a := range args {
		if a == "-h" || a == "--help" {
			fmt.Print(usageText)
			return 0
		}
	}

	fs := flag.NewFlagSet("dsync", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() { fmt.Fprint(os.Stderr, usageText) }

	force := fs.Bool("f", false, "force copy even if in sync")
	jobs := fs.String("j", "1", "worker count in [1, 255]")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	workers, err := orchestrator.ParseWorkerCount(*jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n\n", err)
		fs.Usage()
		return 1
	}

	rest := fs.Args()
	if len(rest) < 2 {
		fmt.Fprint(os.Stderr, "At least one source and a destination directory must be provided.\n\n")
		fs.Usage()
		return 1
	}

	cfg := orchestrator.Config{
		Sources: rest[:len(rest)-1],
		Dest:    rest[len(rest)-1],
		Force:   *force,
		Workers: workers,
	}

	if orchestrator.Run(cfg) {
		return 0
	}
	return 1
}
