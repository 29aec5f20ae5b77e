/*
Copyright © 2026 dgextractor authors
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// settleDelay is how long a dropped file must stay quiet before analysis
// starts. Samples copied into the watch directory arrive in several writes.
const settleDelay = 2 * time.Second

var watchDBPath string

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch DIR",
	Short: "Watch a directory and analyze samples as they arrive",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		extractor, err := newExtractor()
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}
		repo, err := openRepository(watchDBPath)
		if err != nil {
			fmt.Printf("[!] %v", err)
			os.Exit(1)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			fmt.Printf("[!] unable to start directory watcher. %v", err)
			os.Exit(1)
		}
		defer watcher.Close()

		if err := watcher.Add(dir); err != nil {
			fmt.Printf("[!] unable to watch directory. %v", err)
			os.Exit(1)
		}
		fmt.Printf("[*] Watching directory: %s\n", dir)

		ctx := cmd.Context()
		ready := make(chan string)
		timers := make(map[string]*time.Timer)

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
					continue
				}
				if timer, exists := timers[event.Name]; exists {
					timer.Stop()
				}
				name := event.Name
				timers[name] = time.AfterFunc(settleDelay, func() {
					ready <- name
				})
			case name := <-ready:
				delete(timers, name)
				result, err := scanFile(ctx, extractor, repo, name)
				if err != nil {
					log.WithError(err).WithField("file", name).Error("Failed to analyze dropped file")
					continue
				}
				fmt.Printf("[+] %s: %s\n", name, result.Status)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Error("Watcher error")
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchDBPath, "db", "", "Result database path")
	rootCmd.AddCommand(watchCmd)
}
