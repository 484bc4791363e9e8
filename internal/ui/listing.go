package ui

import (
	"fmt"
	"strings"
)

// BindingInfo is a display-ready view of a configured binding
type BindingInfo struct {
	Trigger string
	Cmd     string
	Comment string
}

// PrintBindingList displays a styled list of bindings
func PrintBindingList(bindings []BindingInfo) {
	if len(bindings) == 0 {
		fmt.Println(Warning("No bindings configured"))
		return
	}

	fmt.Println()
	fmt.Println(Title("Bindings"))
	fmt.Println(Muted(fmt.Sprintf("Found %d binding(s)", len(bindings))))
	fmt.Println()

	for i, b := range bindings {
		fmt.Printf("  %s %s\n", Muted(fmt.Sprintf("%2d.", i+1)), BindingTriggerStyle.Render(b.Trigger))
		fmt.Printf("      %s\n", BindingCmdStyle.Render(b.Cmd))
		if b.Comment != "" {
			fmt.Printf("      %s\n", BindingCommentStyle.Render(b.Comment))
		}
	}
	fmt.Println()
}

// DeviceInfo contains information about a pointing device for display
type DeviceInfo struct {
	VendorID     uint16
	ProductID    uint16
	Manufacturer string
	Product      string
}

// PrintDeviceList displays a styled list of pointing devices
func PrintDeviceList(devices []DeviceInfo) {
	if len(devices) == 0 {
		fmt.Println(Warning("No pointing devices found"))
		return
	}

	fmt.Println()
	fmt.Println(Title("Pointing Devices"))
	fmt.Println(Muted(fmt.Sprintf("Found %d device(s)", len(devices))))
	fmt.Println()

	for _, d := range devices {
		printDevice(d)
	}
	fmt.Println()
}

func printDevice(d DeviceInfo) {
	idLine := DeviceIDStyle.Render(fmt.Sprintf("  0x%04X:0x%04X", d.VendorID, d.ProductID))

	name := d.Product
	if name == "" {
		name = "Unknown Device"
	}

	var details []string
	details = append(details, DeviceNameStyle.Render(name))
	if d.Manufacturer != "" {
		details = append(details, DeviceManufacturerStyle.Render("by "+d.Manufacturer))
	}

	fmt.Printf("%s  %s\n", idLine, strings.Join(details, " "))
}

// PrintShapeButtonUpdated shows a success message after changing the shape button
func PrintShapeButtonUpdated(configPath, button string) {
	fmt.Println()
	fmt.Println(Success("Shape button updated"))
	fmt.Println()
	fmt.Printf("  %s %s\n", Muted("Config:"), configPath)
	fmt.Printf("  %s %s\n", Muted("Button:"), BindingTriggerStyle.Render(button))
	fmt.Println()
}

// PrintBindingSaved shows a success message after recording a binding
func PrintBindingSaved(configPath, trigger, cmd string) {
	fmt.Println()
	fmt.Println(Success("Binding saved"))
	fmt.Println()
	fmt.Printf("  %s %s\n", Muted("Config:"), configPath)
	fmt.Printf("  %s %s\n", Muted("Trigger:"), BindingTriggerStyle.Render(trigger))
	fmt.Printf("  %s %s\n", Muted("Command:"), cmd)
	fmt.Println()
}
