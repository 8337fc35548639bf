package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/pdf-merger/internal/model"
)

// EntryRow renders one input file as a list row: name, path, size and
// modification time
type EntryRow struct {
	widget.BaseWidget

	entry model.FileEntry

	nameLabel     *widget.Label
	pathLabel     *widget.Label
	sizeLabel     *widget.Label
	modifiedLabel *widget.Label
}

// NewEntryRow creates an empty row; fill it with SetEntry
func NewEntryRow() *EntryRow {
	r := &EntryRow{}
	r.ExtendBaseWidget(r)
	r.createUI()
	return r
}

func (r *EntryRow) createUI() {
	r.nameLabel = widget.NewLabel("")
	r.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	r.nameLabel.Truncation = fyne.TextTruncateEllipsis

	r.pathLabel = widget.NewLabel("")
	r.pathLabel.Truncation = fyne.TextTruncateEllipsis

	r.sizeLabel = widget.NewLabel(DashPlaceholder)
	r.sizeLabel.Alignment = fyne.TextAlignTrailing

	r.modifiedLabel = widget.NewLabel(DashPlaceholder)
	r.modifiedLabel.Alignment = fyne.TextAlignTrailing
	r.modifiedLabel.TextStyle = fyne.TextStyle{Monospace: true}
}

// SetEntry shows entry in the row
func (r *EntryRow) SetEntry(entry model.FileEntry) {
	r.entry = entry
	r.nameLabel.SetText(entry.DisplayName)
	r.pathLabel.SetText(entry.Path)
	r.sizeLabel.SetText(entry.SizeLabel())
	r.modifiedLabel.SetText(entry.ModifiedLabel())
}

// Entry returns the entry shown in the row
func (r *EntryRow) Entry() model.FileEntry {
	return r.entry
}

// CreateRenderer implements fyne.Widget
func (r *EntryRow) CreateRenderer() fyne.WidgetRenderer {
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.Transparent)
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	right := container.NewHBox(
		fixedWidth(SizeLabelWidth, r.sizeLabel),
		fixedWidth(ModifiedLabelWidth, r.modifiedLabel),
	)
	left := fixedWidth(NameLabelWidth, r.nameLabel)

	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, left, right, r.pathLabel))
}

// MinSize keeps rows readable in narrow windows
func (r *EntryRow) MinSize() fyne.Size {
	size := r.BaseWidget.MinSize()
	return fyne.NewSize(max(size.Width, RowMinWidth), max(size.Height, RowMinHeight))
}
