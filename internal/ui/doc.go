// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user interactions to the merge session and renders the ordered file
// list, merge progress and settings. All UI strings are localized via Localization.
package ui
