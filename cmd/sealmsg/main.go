package main

import (
	"os"

	"k8s.io/klog/v2"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		klog.ErrorS(err, "sealmsg failed")
		klog.Flush()
		os.Exit(1)
	}
	klog.Flush()
}
