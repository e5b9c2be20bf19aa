package app

import (
	"fmt"

	"github.com/keketcl/umanager/internal/fsx"
	"github.com/keketcl/umanager/internal/usb"
)

func printBaseInfo(info usb.BaseDeviceInfo) {
	fmt.Printf("Device: %s\n", info.ID)
	printField("Vendor ID", info.VendorID)
	printField("Product ID", info.ProductID)
	printField("Manufacturer", info.Manufacturer)
	printField("Product", info.Product)
	printField("Serial", info.SerialNumber)
	printField("Description", info.Description)
	if info.BusNumber != nil {
		fmt.Printf("  Bus: %d\n", *info.BusNumber)
	}
	if info.PortNumber != nil {
		fmt.Printf("  Port: %d\n", *info.PortNumber)
	}
	if info.USBVersion != nil && info.SpeedMbps != nil {
		fmt.Printf("  USB version: %s (%.1f Mbps)\n", *info.USBVersion, *info.SpeedMbps)
	}
}

func printField(label string, value *string) {
	if value == nil {
		return
	}
	fmt.Printf("  %s: %s\n", label, *value)
}

func printVolumes(volumes []usb.VolumeInfo) {
	if len(volumes) == 0 {
		fmt.Println("  (no mounted volumes)")
		return
	}
	for _, v := range volumes {
		letter := "?"
		if v.DriveLetter != nil {
			letter = *v.DriveLetter
		}
		line := fmt.Sprintf("  Volume %s", letter)
		if v.VolumeLabel != nil {
			line += fmt.Sprintf(" %q", *v.VolumeLabel)
		}
		if v.FileSystem != nil {
			line += fmt.Sprintf(" [%s]", *v.FileSystem)
		}
		if v.TotalBytes != nil && v.FreeBytes != nil {
			line += fmt.Sprintf(" %s free of %s", formatBytes(*v.FreeBytes), formatBytes(*v.TotalBytes))
		}
		fmt.Println(line)
	}
}

func printEjectResult(result usb.EjectResult) {
	if result.Success {
		fmt.Printf("Ejected %s\n", result.AttemptedInstanceID)
		return
	}

	fmt.Printf("Eject failed (status 0x%X, last attempt %s)\n", result.ConfigRet, result.AttemptedInstanceID)
	if result.VetoType != nil {
		fmt.Printf("  Vetoed by: %s", result.VetoType)
		if result.VetoName != nil {
			fmt.Printf(" (%s)", *result.VetoName)
		}
		fmt.Println()
		fmt.Println("  Close the blocking application and try again")
	}
}

func printEntry(e fsx.Entry) {
	kind := "file"
	if e.IsDir {
		kind = "dir "
	}
	fmt.Printf("%s  %10d  %s  %s\n", kind, e.Size, e.ModTime.Format("2006-01-02 15:04"), e.Name)
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
