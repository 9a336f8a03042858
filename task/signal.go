package task

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
)

// stopSignalHandling stops listening for interrupts
func (tm *Manager) stopSignalHandling() {
	tm.signalMu.Lock()
	defer tm.signalMu.Unlock()

	if tm.signalRegistered && tm.signalChan != nil {
		signal.Stop(tm.signalChan)
		close(tm.signalChan)
		tm.signalRegistered = false
	}
}

// registerSignalHandling sets up signal handling for graceful shutdown
func (tm *Manager) registerSignalHandling() {
	tm.signalMu.Lock()
	defer tm.signalMu.Unlock()

	if tm.signalRegistered {
		return
	}

	tm.signalChan = make(chan os.Signal, 2) // graceful + hard
	signal.Notify(tm.signalChan, os.Interrupt, syscall.SIGTERM)
	tm.signalRegistered = true

	go tm.handleSignals()
}

// handleSignals cancels running builds on the first signal and forces an exit
// on the second
func (tm *Manager) handleSignals() {
	signalCount := 0
	for sig := range tm.signalChan {
		signalCount++
		switch signalCount {
		case 1:
			go tm.gracefulShutdown(sig)
		case 2:
			fmt.Fprintf(os.Stderr, "\n🛑 Received second signal %v - forcing exit with goroutine dump\n", sig)
			tm.forceExitWithStack()
		default:
			fmt.Fprintf(os.Stderr, "\n☠️ Received signal #%d (%v) - PANIC EXIT\n", signalCount, sig)
			panic("FORCE EXIT: Process interrupted multiple times - emergency termination")
		}
	}
}

// gracefulShutdown runs the interrupt handler, cancels all tasks and waits for
// the workers to notice, exiting 130 either way
func (tm *Manager) gracefulShutdown(sig os.Signal) {
	tm.shutdownOnce.Do(func() {
		fmt.Fprintf(os.Stderr, "\n🛑 Received %v - initiating graceful shutdown...\n", sig)
		fmt.Fprintf(os.Stderr, "   Press Ctrl+C again to force immediate exit\n\n")
		fmt.Fprint(os.Stderr, tm.Debug())

		tm.CancelAll()

		done := make(chan struct{})
		go func() {
			tm.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			fmt.Fprintf(os.Stderr, "✅ All tasks stopped\n")
		case <-time.After(tm.gracefulTimeout):
			fmt.Fprintf(os.Stderr, "⏰ Graceful shutdown timeout reached\n")
			fmt.Fprintln(os.Stderr, tm.Pretty())
		}

		tm.signalMu.Lock()
		onInterrupt := tm.onInterrupt
		tm.signalMu.Unlock()
		if onInterrupt != nil {
			onInterrupt()
		}
		os.Exit(130)
	})
}

// forceExitWithStack performs forced exit with goroutine stack dump
func (tm *Manager) forceExitWithStack() {
	fmt.Fprintf(os.Stderr, "\n💥 Force exit - dumping goroutine stacks...\n")
	fmt.Fprintf(os.Stderr, "=====================================\n")

	tm.CancelAll()

	fmt.Fprintf(os.Stderr, "Number of goroutines: %d\n", runtime.NumGoroutine())
	fmt.Fprintf(os.Stderr, "-------------------------------------\n")

	buf := make([]byte, 1<<20)
	stackLen := runtime.Stack(buf, true)
	fmt.Fprintf(os.Stderr, "%s\n", buf[:stackLen])
	fmt.Fprintf(os.Stderr, "=====================================\n")

	os.Exit(130)
}
