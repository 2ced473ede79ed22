package core

import (
	"fmt"
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

// Property: Config Round-Trip
// Any valid journal path and alert thresholds written to .vbconfig are
// read back unchanged and pass validation.
func TestProperty_ConfigRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		journal := rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,12}[A-Za-z0-9]`).Draw(rt, "journal")
		openDays := rapid.IntRange(0, 365).Draw(rt, "openDays")
		gapDays := rapid.IntRange(0, 60).Draw(rt, "gapDays")

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ConfigFileName), fmt.Sprintf(
			"journal:\n  path: %q\nalerts:\n  open_task_days: %d\n  journal_gap_days: %d\n",
			journal, openDays, gapDays))

		cm := NewConfigurationManager(dir)
		cfg, err := cm.LoadGlobalConfig()
		if err != nil {
			rt.Fatalf("LoadGlobalConfig: %v", err)
		}
		if cfg.JournalPath != journal || cfg.Alerts.OpenTaskDays != openDays || cfg.Alerts.JournalGapDays != gapDays {
			rt.Fatalf("round trip = %+v", cfg)
		}
		if err := cm.ValidateConfig(cfg); err != nil {
			rt.Fatalf("ValidateConfig: %v", err)
		}
	})
}
