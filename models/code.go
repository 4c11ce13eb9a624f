package models

import "regexp"

// CodePattern matches a product code: "PROD-" followed by exactly four digits.
var CodePattern = regexp.MustCompile(`^PROD-[0-9]{4}$`)
