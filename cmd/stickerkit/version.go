package main

import "fmt"

type versionCmd struct{ r *root }

func (v *versionCmd) Run() error {
	line := fmt.Sprintf("%s version %s", v.r.program, version)
	if commit != "" {
		line += " (" + commit
		if date != "" {
			line += " " + date
		}
		line += ")"
	}
	fmt.Fprintln(v.r.out(), line)
	return nil
}
