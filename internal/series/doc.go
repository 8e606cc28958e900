// Package series turns a measurement dataset into cleaned, per-site time
// series for one characteristic.
//
// Cleaning never fails. Rows with an unparseable date, a non-numeric or
// non-finite value, or no site identifier are dropped and counted in the
// returned CleanReport. Characteristic names are matched case-insensitively;
// ListCharacteristics reports them case-sensitively.
package series
