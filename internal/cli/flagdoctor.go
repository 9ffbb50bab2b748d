package cli

// validateFlags centralizes common flag combinations to keep behavior consistent.
func validateFlags(globals *Globals, onChange bool, once bool) error {
	// once + on-change makes no sense; a single emission cannot dedupe
	if once && onChange {
		return outputErrorCommon(globals, "INVALID_FLAGS", "--once cannot be combined with --on-change", "drop --on-change or remove --once")
	}
	// quiet + text is confusing for scripts; steer to ndjson
	if globals != nil && globals.Format == "text" && globals.Quiet {
		return outputErrorCommon(globals, "INVALID_FLAGS", "--quiet is only supported with ndjson output", "switch to --format ndjson or drop --quiet")
	}
	return nil
}
