// Package markdown loads article files from disk, parses their metadata
// blocks, renders Markdown into HTML, and imports the results into the
// article store.
package markdown
