// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// setupCommand initializes the config file and index database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create a config file and initialize the index database",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// dirsCommand manages the scanned library directories.
func dirsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dirs",
		Usage: "Show or edit the list of scanned library directories",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "add",
				Usage: "Add DIR to the list of directories to scan",
			},
			&cli.StringFlag{
				Name:  "remove",
				Usage: "Remove DIR from the list of directories to scan",
			},
		},
		Action: r.Dirs,
	}
}

// scanCommand rebuilds the track index from disk.
func scanCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "scan",
		Usage:  "Scan library directories and rebuild the track index",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Scan,
	}
}

// checkCommand resolves a playlist and reports every problem in it.
func checkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Resolve a playlist and report all failing lines",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Flags:  []cli.Flag{configFlag()},
		Action: r.Check,
	}
}

// listCommand prints the resolved file paths.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print the resolved playlist, one file per line",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "strip",
				Usage: "Strip PREFIX from each printed filename",
			},
			&cli.StringFlag{
				Name:  "prepend",
				Usage: "Prepend PREFIX to each printed filename",
			},
			&cli.BoolFlag{
				Name:  "null",
				Usage: "Terminate printed filenames with null characters",
			},
			&cli.BoolFlag{
				Name:  "m3u",
				Usage: "Print in extended M3U format",
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "Randomize the order of the output, keeping groups together",
			},
		},
		Action: r.List,
	}
}

// linkCommand materializes the playlist as symlinks.
func linkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "link",
		Usage: "Create symlinks to the resolved files in a destination directory",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
			&cli.StringArg{Name: "destination"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "no-number",
				Usage: "Do not prefix link names with playlist positions",
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "Randomize the order of the output, keeping groups together",
			},
		},
		Action: r.Link,
	}
}

// copyCommand materializes the playlist with rsync.
func copyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "copy",
		Usage: "Copy the resolved files to a destination directory with rsync",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "playlist"},
			&cli.StringArg{Name: "destination"},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:  "no-number",
				Usage: "Do not prefix copied names with playlist positions",
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "Randomize the order of the output, keeping groups together",
			},
		},
		Action: r.Copy,
	}
}
