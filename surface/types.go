package surface

// Command is one formatting operation from the surface's closed vocabulary.
type Command string

const (
	Bold                Command = "bold"
	Italic              Command = "italic"
	Underline           Command = "underline"
	StrikeThrough       Command = "strikeThrough"
	Subscript           Command = "subscript"
	Superscript         Command = "superscript"
	RemoveFormat        Command = "removeFormat"
	JustifyLeft         Command = "justifyLeft"
	JustifyCenter       Command = "justifyCenter"
	JustifyRight        Command = "justifyRight"
	JustifyFull         Command = "justifyFull"
	InsertOrderedList   Command = "insertOrderedList"
	InsertUnorderedList Command = "insertUnorderedList"
	Indent              Command = "indent"
	Outdent             Command = "outdent"
	FormatParagraph     Command = "formatParagraph"
	FormatBlockquote    Command = "formatBlockquote"
	FormatCodeBlock     Command = "formatCodeBlock"
	FontName            Command = "fontName"
	FontSize            Command = "fontSize"
	ForeColor           Command = "foreColor"
	HiliteColor         Command = "hiliteColor"
	Undo                Command = "undo"
	Redo                Command = "redo"
	InsertHTML          Command = "insertHTML"
)

var commands = []Command{
	Bold, Italic, Underline, StrikeThrough, Subscript, Superscript, RemoveFormat,
	JustifyLeft, JustifyCenter, JustifyRight, JustifyFull,
	InsertOrderedList, InsertUnorderedList, Indent, Outdent,
	FormatParagraph, FormatBlockquote, FormatCodeBlock,
	FontName, FontSize, ForeColor, HiliteColor,
	Undo, Redo, InsertHTML,
}

// Commands returns the full vocabulary in toolbar order.
func Commands() []Command {
	out := make([]Command, len(commands))
	copy(out, commands)
	return out
}

// Valid reports whether c belongs to the vocabulary.
func (c Command) Valid() bool {
	for _, k := range commands {
		if k == c {
			return true
		}
	}
	return false
}

// NeedsArgument reports whether c is meaningless without an argument.
func (c Command) NeedsArgument() bool {
	switch c {
	case FontName, FontSize, ForeColor, HiliteColor, InsertHTML:
		return true
	default:
		return false
	}
}

// Range is a selection expressed as caret offsets. Anchor is where the
// selection started, Head is where the caret currently is.
type Range struct {
	Anchor int
	Head   int
}

// Caret returns a collapsed range at offset.
func Caret(offset int) Range { return Range{Anchor: offset, Head: offset} }

// Collapsed reports whether r selects nothing.
func (r Range) Collapsed() bool { return r.Anchor == r.Head }

// Normalize returns the half-open span covered by r.
func (r Range) Normalize() (start, end int) {
	if r.Anchor <= r.Head {
		return r.Anchor, r.Head
	}
	return r.Head, r.Anchor
}

// ImageID is a non-owning handle to one image element. It is scoped to a
// content generation: once the content is replaced wholesale the handle
// stops resolving.
type ImageID struct {
	Gen uint64
	Seq int
}

// IsZero reports whether id was never assigned.
func (id ImageID) IsZero() bool { return id == ImageID{} }

// ImageAttrs are the editable attributes of an image element.
type ImageAttrs struct {
	Src    string
	Alt    string
	Width  int
	Height int
}

// ImageInfo pairs an image handle with its offset and current attributes.
type ImageInfo struct {
	ID     ImageID
	Offset int
	Attrs  ImageAttrs
}

// TargetKind classifies what a pointer event landed on.
type TargetKind uint8

const (
	TargetOutside TargetKind = iota
	TargetText
	TargetImage
)

// Target is the resolved target of a click.
type Target struct {
	Kind   TargetKind
	Offset int
	Image  ImageID
}

// Marks is a bit set of inline formatting applied to a span.
type Marks uint16

const (
	MarkBold Marks = 1 << iota
	MarkItalic
	MarkUnderline
	MarkStrike
	MarkSub
	MarkSup
	MarkCode
	MarkLink
)

// Has reports whether all bits of o are set.
func (m Marks) Has(o Marks) bool { return m&o == o }

// Span is one run of a block's inline content as seen by a renderer.
type Span struct {
	Start int
	End   int
	Text  string
	Marks Marks
	Href  string

	Font       string
	Size       string
	Color      string
	Background string

	Break bool
	Image *ImageInfo
}

// Block is one block-level element as seen by a renderer.
type Block struct {
	Tag    string
	List   string // "ol", "ul" or empty
	Index  int    // 1-based position in its list
	Nested int    // enclosing lists above this item's own list
	Quote  int    // blockquote nesting, the block itself included
	Align  string
	Indent int // margin-left in px
	Spans  []Span
}

// Surface is the narrow adapter the editor talks to. Implementations own the
// live document; callers never hold onto its nodes.
type Surface interface {
	// Content serializes the live document.
	Content() string
	// SetContent replaces the document wholesale. It resets the selection,
	// clears history and invalidates image handles. It does not fire the
	// content-changed signal.
	SetContent(html string)
	// Exec applies cmd to the current selection and reports whether the
	// serialized content changed.
	Exec(cmd Command, arg string) bool
	// OnContentChanged registers the content-changed listener; nil removes it.
	OnContentChanged(fn func())

	TextContent() string
	HasImages() bool
	Len() int
	Selection() Range
	SetSelection(r Range)
	SelectedText() string

	InsertText(text string)
	DeleteBackward()
	DeleteForward()
	SplitBlock()

	Images() []ImageInfo
	Image(id ImageID) (ImageAttrs, bool)
	SetImage(id ImageID, attrs ImageAttrs) bool

	Blocks() []Block
}
