package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"

	"github.com/ytget/pdf-merger/internal/config"
	"github.com/ytget/pdf-merger/internal/logger"
	"github.com/ytget/pdf-merger/internal/model"
	"github.com/ytget/pdf-merger/internal/platform"
	"github.com/ytget/pdf-merger/internal/session"
	"github.com/ytget/pdf-merger/internal/watch"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	session      *session.Session
	settings     *config.Settings
	localization *Localization
	log          zerolog.Logger

	// UI-thread copy of the collection
	entries  []model.FileEntry
	selected int

	fileList     *widget.List
	nameHeader   *widget.Label
	sizeHeader   *widget.Label
	modHeader    *widget.Label
	summaryLabel *widget.Label

	addFilesBtn  *widget.Button
	addFolderBtn *widget.Button
	watchBtn     *widget.Button
	removeBtn    *widget.Button
	clearBtn     *widget.Button
	moveUpBtn    *widget.Button
	moveDownBtn  *widget.Button

	outputLabel *widget.Label
	outputEntry *widget.Entry
	browseBtn   *widget.Button

	progressBar *widget.ProgressBar
	statusLabel *widget.Label
	mergeBtn    *widget.Button
	exitBtn     *widget.Button

	watcher     *watch.Watcher
	stopWatcher context.CancelFunc

	// drops and watch arrivals held while a merge runs
	queuedFiles []string
	queuedDirs  []string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, sess *session.Session, settings *config.Settings, log zerolog.Logger) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		session:      sess,
		settings:     settings,
		localization: localization,
		log:          log,
		selected:     -1,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.log.Debug().Msg("UI setup completed")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	// File list with column headers
	ui.nameHeader = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.sizeHeader = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})
	ui.modHeader = widget.NewLabelWithStyle("", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})
	header := container.NewBorder(nil, nil, ui.nameHeader, container.NewHBox(ui.sizeHeader, ui.modHeader))

	ui.fileList = widget.NewList(
		func() int { return len(ui.entries) },
		func() fyne.CanvasObject { return NewEntryRow() },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(ui.entries) {
				return
			}
			obj.(*EntryRow).SetEntry(ui.entries[id])
		},
	)
	ui.fileList.OnSelected = func(id widget.ListItemID) { ui.selected = id }
	ui.fileList.OnUnselected = func(id widget.ListItemID) {
		if ui.selected == id {
			ui.selected = -1
		}
	}
	ui.summaryLabel = widget.NewLabel("")

	// Editing buttons
	ui.addFilesBtn = widget.NewButton("", ui.onAddFiles)
	ui.addFolderBtn = widget.NewButton("", ui.onAddFolder)
	ui.watchBtn = widget.NewButton("", ui.onWatchFolder)
	ui.removeBtn = widget.NewButton("", ui.onRemove)
	ui.clearBtn = widget.NewButton("", ui.onClear)
	ui.moveUpBtn = widget.NewButton("", ui.onMoveUp)
	ui.moveDownBtn = widget.NewButton("", ui.onMoveDown)
	buttons := container.NewHBox(
		ui.addFilesBtn, ui.addFolderBtn, ui.watchBtn, ui.removeBtn,
		ui.clearBtn, ui.moveUpBtn, ui.moveDownBtn,
	)

	// Output row
	ui.outputLabel = widget.NewLabel("")
	ui.outputEntry = widget.NewEntry()
	ui.outputEntry.SetText(ui.settings.GetOutputPath())
	ui.outputEntry.OnChanged = ui.session.SetOutputPath
	ui.session.SetOutputPath(ui.outputEntry.Text)
	ui.browseBtn = widget.NewButton("", ui.onBrowseOutput)
	outputRow := container.NewBorder(nil, nil, ui.outputLabel, ui.browseBtn, ui.outputEntry)

	// Progress and actions
	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("")
	ui.mergeBtn = widget.NewButton("", ui.onMerge)
	ui.mergeBtn.Importance = widget.HighImportance
	ui.exitBtn = widget.NewButton("", ui.onExit)
	actions := container.NewBorder(nil, nil, nil, container.NewHBox(ui.exitBtn, ui.mergeBtn), ui.statusLabel)

	top := container.NewVBox(buttons, header)
	bottom := container.NewVBox(ui.summaryLabel, outputRow, ui.progressBar, actions)

	ui.window.SetContent(container.NewBorder(top, bottom, nil, nil, ui.fileList))
	ui.window.SetOnDropped(ui.onDropped)

	ui.refreshUITexts()
	ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
	ui.refreshList()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange switches the UI language for this session
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText

	ui.window.SetTitle(t(KeyAppTitle))
	ui.nameHeader.SetText(t(KeyColumnName))
	ui.sizeHeader.SetText(t(KeyColumnSize))
	ui.modHeader.SetText(t(KeyColumnModified))

	ui.addFilesBtn.SetText(IconFile + " " + t(KeyAddFiles))
	ui.addFolderBtn.SetText(IconFolder + " " + t(KeyAddFolder))
	ui.watchBtn.SetText(IconWatch + " " + t(KeyWatchFolder))
	ui.removeBtn.SetText(t(KeyRemove))
	ui.clearBtn.SetText(t(KeyClearAll))
	ui.moveUpBtn.SetText(IconUp + " " + t(KeyMoveUp))
	ui.moveDownBtn.SetText(IconDown + " " + t(KeyMoveDown))

	ui.outputLabel.SetText(t(KeyOutputFile))
	ui.browseBtn.SetText(t(KeyBrowse))
	ui.mergeBtn.SetText(t(KeyMerge))
	ui.exitBtn.SetText(t(KeyExit))

	ui.updateSummary()
}

// refreshList reloads the entries from the session
func (ui *RootUI) refreshList() {
	ui.entries = ui.session.Entries()
	if ui.selected >= len(ui.entries) {
		ui.fileList.UnselectAll()
		ui.selected = -1
	}
	ui.fileList.Refresh()
	ui.updateSummary()
}

func (ui *RootUI) updateSummary() {
	total := ui.session.TotalSize()
	text := fmt.Sprintf(ui.localization.GetText(KeyFileCount), len(ui.entries), humanize.Bytes(uint64(total)))
	ui.summaryLabel.SetText(text)
}

// addPaths adds files on the UI thread and reports failures
func (ui *RootUI) addPaths(paths ...string) {
	added, err := ui.session.AddFiles(paths...)
	ui.afterAdd(added, err)
}

func (ui *RootUI) afterAdd(added []model.FileEntry, err error) {
	ui.refreshList()
	if len(added) > 0 {
		ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyFilesAdded), len(added)))
	}
	if err != nil {
		ui.log.Warn().Err(err).Msg("some files could not be added")
		ui.showError(errors.New(ui.localization.GetText(KeySomeNotAdded) + ":\n" + err.Error()))
	}
}

// addDirectory scans root off the UI thread
func (ui *RootUI) addDirectory(root string) {
	go func() {
		added, err := ui.session.AddDirectory(root)
		fyne.Do(func() { ui.afterAdd(added, err) })
	}()
}

// onAddFiles opens a file dialog filtered to PDF documents
func (ui *RootUI) onAddFiles() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		ui.addPaths(path)
	}, ui.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{platform.PDFExtension, strings.ToUpper(platform.PDFExtension)}))
	fd.Show()
}

// onAddFolder adds every PDF found under a chosen folder
func (ui *RootUI) onAddFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if uri == nil {
			return
		}
		ui.addDirectory(uri.Path())
	}, ui.window)
}

// onDropped adds dropped files and folders
func (ui *RootUI) onDropped(_ fyne.Position, uris []fyne.URI) {
	var files, dirs []string
	for _, uri := range uris {
		path := uri.Path()
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			dirs = append(dirs, path)
			continue
		}
		files = append(files, path)
	}
	ui.addOrQueue(files, dirs)
}

// addOrQueue adds files and folders, or holds them until the running merge
// finishes; runs on the UI thread
func (ui *RootUI) addOrQueue(files, dirs []string) {
	if ui.session.IsRunning() {
		ui.queuedFiles = append(ui.queuedFiles, files...)
		ui.queuedDirs = append(ui.queuedDirs, dirs...)
		queued := len(ui.queuedFiles) + len(ui.queuedDirs)
		ui.log.Debug().Int("queued", queued).Msg("merge running, holding new inputs")
		ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyQueued), queued))
		return
	}
	for _, dir := range dirs {
		ui.addDirectory(dir)
	}
	if len(files) > 0 {
		ui.addPaths(files...)
	}
}

// flushQueued adds everything held back during the last merge
func (ui *RootUI) flushQueued() {
	files, dirs := ui.queuedFiles, ui.queuedDirs
	ui.queuedFiles, ui.queuedDirs = nil, nil
	if len(files) > 0 || len(dirs) > 0 {
		ui.addOrQueue(files, dirs)
	}
}

// onWatchFolder starts reporting PDFs that appear in a chosen folder
func (ui *RootUI) onWatchFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if uri == nil {
			return
		}
		if err := ui.watchDirectory(uri.Path()); err != nil {
			ui.showError(err)
		}
	}, ui.window)
}

func (ui *RootUI) watchDirectory(dir string) error {
	if ui.watcher == nil {
		w, err := watch.New(logger.For(ui.log, logger.ComponentWatch))
		if err != nil {
			return err
		}
		ctx, cancel := context.WithCancel(context.Background())
		if err := w.Start(ctx); err != nil {
			cancel()
			w.Close()
			return err
		}
		ui.watcher = w
		ui.stopWatcher = cancel

		go func() {
			for path := range w.Events() {
				fyne.Do(func() { ui.addOrQueue([]string{path}, nil) })
			}
		}()
	}

	if err := ui.watcher.Watch(dir); err != nil {
		return err
	}
	ui.statusLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyWatching), dir))
	return nil
}

// onRemove removes the selected entry
func (ui *RootUI) onRemove() {
	entry, ok := ui.selectedEntry()
	if !ok {
		ui.showWarning(ui.localization.GetText(KeyNoSelection))
		return
	}
	if err := ui.session.Remove(entry.Path); err != nil {
		ui.showError(ui.localizeError(err))
		return
	}
	ui.fileList.UnselectAll()
	ui.selected = -1
	ui.refreshList()
}

// onClear empties the list after confirmation
func (ui *RootUI) onClear() {
	if len(ui.entries) == 0 {
		return
	}
	dialog.ShowConfirm(
		ui.localization.GetText(KeyConfirm),
		ui.localization.GetText(KeyConfirmClear),
		func(confirmed bool) {
			if !confirmed {
				return
			}
			ui.session.Clear()
			ui.fileList.UnselectAll()
			ui.selected = -1
			ui.refreshList()
		},
		ui.window,
	)
}

func (ui *RootUI) onMoveUp() {
	ui.move(ui.session.MoveUp)
}

func (ui *RootUI) onMoveDown() {
	ui.move(ui.session.MoveDown)
}

// move applies a reorder to the selection and keeps the moved entry selected
func (ui *RootUI) move(op func(int) (int, error)) {
	if ui.selected < 0 {
		ui.showWarning(ui.localization.GetText(KeyNoSelection))
		return
	}
	index, err := op(ui.selected)
	if err != nil {
		ui.showWarning(ui.localizeError(err).Error())
		return
	}
	ui.refreshList()
	ui.fileList.Select(index)
}

func (ui *RootUI) selectedEntry() (model.FileEntry, bool) {
	if ui.selected < 0 || ui.selected >= len(ui.entries) {
		return model.FileEntry{}, false
	}
	return ui.entries[ui.selected], true
}

// onBrowseOutput picks the output path with a save dialog
func (ui *RootUI) onBrowseOutput() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.showError(err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		// the dialog creates the file; the merge writes it later
		if info, err := os.Stat(path); err == nil && info.Size() == 0 {
			os.Remove(path)
		}
		ui.outputEntry.SetText(platform.EnsurePDFExtension(path))
	}, ui.window)

	fd.SetFilter(storage.NewExtensionFileFilter([]string{platform.PDFExtension}))
	current := strings.TrimSpace(ui.outputEntry.Text)
	if current == "" {
		current = ui.settings.GetOutputPath()
	}
	fd.SetFileName(filepath.Base(current))
	if lister, err := storage.ListerForURI(storage.NewFileURI(filepath.Dir(current))); err == nil {
		fd.SetLocation(lister)
	}
	fd.Show()
}

// onMerge starts a merge of the current list into the output path
func (ui *RootUI) onMerge() {
	outputPath := strings.TrimSpace(ui.outputEntry.Text)

	job, events, err := ui.session.StartMerge(outputPath)
	if err != nil {
		ui.showError(ui.localizeError(err))
		return
	}

	ui.log.Info().Str("job", job.ID).Int("inputs", job.Total()).Msg("merge requested")
	ui.setControlsEnabled(false)
	ui.progressBar.SetValue(0)
	ui.statusLabel.SetText(ui.localization.GetText(KeyStartingMerge))

	go ui.drain(events)
}

// drain hands every job event to the UI thread, in order
func (ui *RootUI) drain(events <-chan model.Event) {
	for ev := range events {
		fyne.Do(func() { ui.applyEvent(ev) })
	}
}

// applyEvent reflects a job event in the UI; runs on the UI thread
func (ui *RootUI) applyEvent(ev model.Event) {
	switch ev.Kind {
	case model.EventProgress:
		ui.progressBar.SetValue(float64(ev.Percent) / 100)
		ui.statusLabel.SetText(ev.Message)
	case model.EventComplete:
		if ev.Outcome != nil {
			ui.finishMerge(*ev.Outcome)
		}
	}
}

func (ui *RootUI) finishMerge(outcome model.Outcome) {
	ui.setControlsEnabled(true)
	ui.flushQueued()

	if !outcome.Success {
		ui.progressBar.SetValue(0)
		ui.statusLabel.SetText(ui.localization.GetText(KeyMergeFailed))
		ui.showError(errors.New(ui.outcomeText(outcome)))
		return
	}

	ui.progressBar.SetValue(1)
	ui.statusLabel.SetText(ui.localization.GetText(KeyMergeComplete))
	dialog.ShowInformation(ui.localization.GetText(KeySuccess), ui.outcomeText(outcome), ui.window)

	if ui.settings.GetAutoRevealOnComplete() {
		if err := platform.OpenFileInManager(outcome.OutputPath); err != nil {
			ui.log.Error().Err(err).Str("path", outcome.OutputPath).Msg("failed to reveal merged file")
		}
	}
}

// outcomeText is the dialog body for a finished job
func (ui *RootUI) outcomeText(outcome model.Outcome) string {
	text := outcome.Message
	if model.IsPrecondition(outcome.Err) {
		text = ui.localizeError(outcome.Err).Error()
	}
	if len(outcome.Skipped) == 0 {
		return text
	}

	names := make([]string, len(outcome.Skipped))
	for i, path := range outcome.Skipped {
		names[i] = filepath.Base(path)
	}
	return text + "\n\n" + ui.localization.GetText(KeySkippedFiles) + "\n" + strings.Join(names, "\n")
}

// setControlsEnabled toggles everything that could change the list or start a job
func (ui *RootUI) setControlsEnabled(enabled bool) {
	for _, btn := range []*widget.Button{
		ui.addFilesBtn, ui.addFolderBtn, ui.watchBtn, ui.removeBtn, ui.clearBtn,
		ui.moveUpBtn, ui.moveDownBtn, ui.browseBtn, ui.mergeBtn,
	} {
		if enabled {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
	if enabled {
		ui.outputEntry.Enable()
	} else {
		ui.outputEntry.Disable()
	}
}

// localizeError maps known errors to the current language
func (ui *RootUI) localizeError(err error) error {
	keys := []struct {
		target error
		key    string
	}{
		{model.ErrNoSelection, KeyNoSelection},
		{model.ErrNoInput, KeyNoFiles},
		{model.ErrNoOutputPath, KeyNoOutput},
		{model.ErrNoValidInput, KeyNoValidFiles},
		{model.ErrMergeRunning, KeyMergeRunning},
	}
	for _, k := range keys {
		if errors.Is(err, k.target) {
			return errors.New(ui.localization.GetText(k.key))
		}
	}
	return err
}

func (ui *RootUI) showError(err error) {
	dialog.ShowError(err, ui.window)
}

func (ui *RootUI) showWarning(message string) {
	dialog.ShowInformation(ui.localization.GetText(KeyWarning), message, ui.window)
}

// onShowSettings opens the session settings dialog
func (ui *RootUI) onShowSettings() {
	sd := NewSettingsDialog(ui.settings, ui.localization, ui.window)
	sd.SetOnApplied(func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		if !ui.session.IsRunning() {
			ui.outputEntry.SetText(ui.settings.GetOutputPath())
		}
	})
	sd.Show()
}

// onExit stops the watcher and quits
func (ui *RootUI) onExit() {
	ui.Close()
	ui.app.Quit()
}

// Close releases background resources
func (ui *RootUI) Close() {
	if ui.stopWatcher != nil {
		ui.stopWatcher()
		ui.stopWatcher = nil
	}
	if ui.watcher != nil {
		ui.watcher.Close()
		ui.watcher = nil
	}
}
