// SPDX-License-Identifier: MIT
package lexer

type (
	// ItemID int holding an identifier for the Item tokens
	ItemID int

	// Item holds the token type & text of a scanned fragment.
	Item struct {
		Err error
		Val string // The value of this Item
		ID  ItemID // The type of this Item
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_             = iota // Consume 0 to start actual numbering at 1.
	ItemError            // Notify occurrence of an `error`.
	ItemSplitter         // References the configured splitter.
	ItemEOF              // End of the input
	ItemValue            // One id:value entry.
	ItemEndMarker        // Closes a node's children.
)
