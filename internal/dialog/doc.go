// Package dialog implements the file, confirm and error dialogs used by the
// project load and save actions.
//
// Terminal renders interactive prompts with charmbracelet/huh. Scripted
// answers from preset values and is used for non-interactive runs, where
// paths and confirmations come from command-line flags.
package dialog
