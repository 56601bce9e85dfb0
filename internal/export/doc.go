// Package export writes the static-site artifacts produced from Doxygen XML.
//
// For every converted compound XML file two files are written:
//
//   - a JSON data file under the data root, e.g. _data/api/1.0/classfoo.json
//   - a Markdown stub page, e.g. api/1.0/classfoo.md
//
// The data file holds the decoded XML after SiteFixup. The stub page carries
// only front matter selecting the site layout that renders the data file:
//
//	---
//	layout: "doxygen"
//	no_title_header: true
//	---
//
// # Index Page
//
// WriteIndex lists the version directories below the API directory and
// writes an index.md linking each of them:
//
//	---
//	title: "API"
//	---
//	- [0.9](0.9)
//	- [1.0](1.0)
//
// # File Naming
//
// Artifacts are named after the XML file with the .xml extension removed:
//   - JSON: <base>.json
//   - Markdown: <base>.md
package export
