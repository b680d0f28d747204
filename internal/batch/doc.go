// Package batch reads files of texts for the translate command's batch mode.
package batch
