package x3ftiff_test

import _ "github.com/bool64/dev" // Include CI/dev scripts to project.
