// Package io reads and writes ABC-Lists, KaWas, mind maps and backups.
//
// # Document Formats
//
// Lists and KaWas export to the formats in [Formats]:
//
//   - csv: one row per word (lists) or letter position (KaWas)
//   - md: Markdown with a section per letter, or a letter table for KaWas
//   - html: the Markdown rendered with goldmark and sanitized by bluemonday
//   - pdf: an A4 document built with fpdf
//   - json, yaml: the stored structure
//
// Use [ExportList] and [ExportKawa] to write to any io.Writer, or
// [ExportListFile] and [ExportKawaFile] to pick the format from a file
// extension:
//
//	err := io.ExportListFile(ctx, list, "tiere.pdf")
//
// # CSV Import
//
// [ReadListCSV] accepts the files written by [WriteListCSV] and simpler
// spreadsheets:
//
//	letter,text,explanation,version,imported,timestamp
//	a,Affe,climbs trees,1,false,1709294400000
//
//	Affe,climbs trees
//	Bär,
//
// Imported entries are flagged so the learner can tell them apart from
// words they wrote themselves.
//
// # Mind Maps
//
// [WriteGraphJSON] and [ReadGraphJSON] round-trip a [mindmap.Graph] in the
// node/edge JSON shape the generator emits:
//
//	{
//	  "nodes": [
//	    {"id": "root", "position": {"x": 400, "y": 50},
//	     "data": {"label": "Tiere", "type": "root", "sourceId": "Tiere", "sourceType": "abc-list"}}
//	  ],
//	  "edges": [
//	    {"id": "edge-root-letter-a", "source": "root", "target": "letter-a"}
//	  ]
//	}
//
// # Backups
//
// [WriteBackup] and [ReadBackup] encode a whole library as JSON or YAML;
// [BackupFormat] picks one from the file extension.
package io
