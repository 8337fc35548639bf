package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyFile             = "file"
	KeySettings         = "settings"
	KeyLanguage         = "language"
	KeyAddFiles         = "add_files"
	KeyAddFolder        = "add_folder"
	KeyWatchFolder      = "watch_folder"
	KeyRemove           = "remove"
	KeyClearAll         = "clear_all"
	KeyMoveUp           = "move_up"
	KeyMoveDown         = "move_down"
	KeyOutputFile       = "output_file"
	KeyBrowse           = "browse"
	KeyMerge            = "merge"
	KeyExit             = "exit"
	KeyReady            = "ready"
	KeyStartingMerge    = "starting_merge"
	KeyMergeComplete    = "merge_complete"
	KeyMergeFailed      = "merge_failed"
	KeySuccess          = "success"
	KeyError            = "error"
	KeyWarning          = "warning"
	KeyConfirm          = "confirm"
	KeyConfirmClear     = "confirm_clear"
	KeyNoSelection      = "no_selection"
	KeyNoFiles          = "no_files"
	KeyNoOutput         = "no_output"
	KeyNoValidFiles     = "no_valid_files"
	KeyMergeRunning     = "merge_running"
	KeySomeNotAdded     = "some_not_added"
	KeyFilesAdded       = "files_added"
	KeyWatching         = "watching"
	KeyQueued           = "queued"
	KeySkippedFiles     = "skipped_files"
	KeyFileCount        = "file_count"
	KeyOutputDirectory  = "output_directory"
	KeyAutoReveal       = "auto_reveal"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeySettingsApplied  = "settings_applied"
	KeyErrorOpeningFile = "error_opening_file"
	KeyColumnName       = "column_name"
	KeyColumnSize       = "column_size"
	KeyColumnModified   = "column_modified"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "PDF Merger",
		KeyFile:             "File",
		KeySettings:         "Settings",
		KeyLanguage:         "Language",
		KeyAddFiles:         "Add Files",
		KeyAddFolder:        "Add Folder",
		KeyWatchFolder:      "Watch Folder",
		KeyRemove:           "Remove",
		KeyClearAll:         "Clear All",
		KeyMoveUp:           "Move Up",
		KeyMoveDown:         "Move Down",
		KeyOutputFile:       "Output File:",
		KeyBrowse:           "Browse",
		KeyMerge:            "Merge PDFs",
		KeyExit:             "Exit",
		KeyReady:            "Ready",
		KeyStartingMerge:    "Starting merge...",
		KeyMergeComplete:    "Merge complete!",
		KeyMergeFailed:      "Merge failed",
		KeySuccess:          "Success",
		KeyError:            "Error",
		KeyWarning:          "Warning",
		KeyConfirm:          "Confirm",
		KeyConfirmClear:     "Clear all files from the list?",
		KeyNoSelection:      "No file selected",
		KeyNoFiles:          "No files selected for merging",
		KeyNoOutput:         "Please specify output file path",
		KeyNoValidFiles:     "No valid PDF files to merge",
		KeyMergeRunning:     "A merge is already running",
		KeySomeNotAdded:     "Some files could not be added",
		KeyFilesAdded:       "%d file(s) added",
		KeyWatching:         "Watching %s",
		KeyQueued:           "%d item(s) will be added when the merge finishes",
		KeySkippedFiles:     "Skipped files:",
		KeyFileCount:        "%d file(s), %s",
		KeyOutputDirectory:  "Output Directory",
		KeyAutoReveal:       "Reveal merged file when done",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeySettingsApplied:  "Settings applied for this session",
		KeyErrorOpeningFile: "Error opening file",
		KeyColumnName:       "Name",
		KeyColumnSize:       "Size",
		KeyColumnModified:   "Modified",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Объединение PDF",
		KeyFile:             "Файл",
		KeySettings:         "Настройки",
		KeyLanguage:         "Язык",
		KeyAddFiles:         "Добавить файлы",
		KeyAddFolder:        "Добавить папку",
		KeyWatchFolder:      "Следить за папкой",
		KeyRemove:           "Удалить",
		KeyClearAll:         "Очистить всё",
		KeyMoveUp:           "Вверх",
		KeyMoveDown:         "Вниз",
		KeyOutputFile:       "Выходной файл:",
		KeyBrowse:           "Обзор",
		KeyMerge:            "Объединить PDF",
		KeyExit:             "Выход",
		KeyReady:            "Готово",
		KeyStartingMerge:    "Начало объединения...",
		KeyMergeComplete:    "Объединение завершено!",
		KeyMergeFailed:      "Ошибка объединения",
		KeySuccess:          "Успех",
		KeyError:            "Ошибка",
		KeyWarning:          "Предупреждение",
		KeyConfirm:          "Подтверждение",
		KeyConfirmClear:     "Очистить список файлов?",
		KeyNoSelection:      "Файл не выбран",
		KeyNoFiles:          "Не выбраны файлы для объединения",
		KeyNoOutput:         "Укажите путь к выходному файлу",
		KeyNoValidFiles:     "Нет корректных PDF-файлов для объединения",
		KeyMergeRunning:     "Объединение уже выполняется",
		KeySomeNotAdded:     "Некоторые файлы не удалось добавить",
		KeyFilesAdded:       "Добавлено файлов: %d",
		KeyWatching:         "Отслеживается %s",
		KeyQueued:           "Будет добавлено после объединения: %d",
		KeySkippedFiles:     "Пропущенные файлы:",
		KeyFileCount:        "Файлов: %d, %s",
		KeyOutputDirectory:  "Папка для сохранения",
		KeyAutoReveal:       "Показать файл после объединения",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeySettingsApplied:  "Настройки применены до конца сеанса",
		KeyErrorOpeningFile: "Ошибка открытия файла",
		KeyColumnName:       "Имя",
		KeyColumnSize:       "Размер",
		KeyColumnModified:   "Изменён",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "Mesclador de PDF",
		KeyFile:             "Arquivo",
		KeySettings:         "Configurações",
		KeyLanguage:         "Idioma",
		KeyAddFiles:         "Adicionar Arquivos",
		KeyAddFolder:        "Adicionar Pasta",
		KeyWatchFolder:      "Monitorar Pasta",
		KeyRemove:           "Remover",
		KeyClearAll:         "Limpar Tudo",
		KeyMoveUp:           "Mover para Cima",
		KeyMoveDown:         "Mover para Baixo",
		KeyOutputFile:       "Arquivo de Saída:",
		KeyBrowse:           "Navegar",
		KeyMerge:            "Mesclar PDFs",
		KeyExit:             "Sair",
		KeyReady:            "Pronto",
		KeyStartingMerge:    "Iniciando mesclagem...",
		KeyMergeComplete:    "Mesclagem concluída!",
		KeyMergeFailed:      "Falha na mesclagem",
		KeySuccess:          "Sucesso",
		KeyError:            "Erro",
		KeyWarning:          "Aviso",
		KeyConfirm:          "Confirmar",
		KeyConfirmClear:     "Limpar todos os arquivos da lista?",
		KeyNoSelection:      "Nenhum arquivo selecionado",
		KeyNoFiles:          "Nenhum arquivo selecionado para mesclar",
		KeyNoOutput:         "Especifique o caminho do arquivo de saída",
		KeyNoValidFiles:     "Nenhum arquivo PDF válido para mesclar",
		KeyMergeRunning:     "Uma mesclagem já está em andamento",
		KeySomeNotAdded:     "Alguns arquivos não puderam ser adicionados",
		KeyFilesAdded:       "%d arquivo(s) adicionado(s)",
		KeyWatching:         "Monitorando %s",
		KeyQueued:           "%d item(ns) serão adicionados ao fim da mesclagem",
		KeySkippedFiles:     "Arquivos ignorados:",
		KeyFileCount:        "%d arquivo(s), %s",
		KeyOutputDirectory:  "Diretório de Saída",
		KeyAutoReveal:       "Mostrar arquivo ao concluir",
		KeySave:             "Salvar",
		KeyCancel:           "Cancelar",
		KeySettingsApplied:  "Configurações aplicadas nesta sessão",
		KeyErrorOpeningFile: "Erro ao abrir arquivo",
		KeyColumnName:       "Nome",
		KeyColumnSize:       "Tamanho",
		KeyColumnModified:   "Modificado",
	}
}
