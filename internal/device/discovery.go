// Package device enumerates the HID pointing devices attached to the host.
package device

import (
	"github.com/karalabe/hid"
)

// Generic-desktop usages identifying pointing hardware.
const (
	usagePageGenericDesktop = 0x01
	usageMouse              = 0x02
	usagePointer            = 0x01
)

// Info describes a discovered HID device
type Info struct {
	VendorID     uint16
	ProductID    uint16
	Path         string
	Manufacturer string
	Product      string
	SerialNumber string
	UsagePage    uint16
	Usage        uint16
}

// IsPointer reports whether the device presents itself as a mouse or pointer
func (i Info) IsPointer() bool {
	return i.UsagePage == usagePageGenericDesktop &&
		(i.Usage == usageMouse || i.Usage == usagePointer)
}

// List returns all available HID devices
func List() ([]Info, error) {
	devices := hid.Enumerate(0, 0)

	result := make([]Info, len(devices))
	for i, d := range devices {
		result[i] = fromHID(d)
	}
	return result, nil
}

// ListPointers returns only the devices that look like mice
func ListPointers() ([]Info, error) {
	all, err := List()
	if err != nil {
		return nil, err
	}

	var pointers []Info
	for _, d := range all {
		if d.IsPointer() {
			pointers = append(pointers, d)
		}
	}
	return pointers, nil
}

// Find searches for a device matching the given vendor and product IDs
func Find(vendorID, productID uint16) (*Info, error) {
	devices := hid.Enumerate(vendorID, productID)
	if len(devices) == 0 {
		return nil, nil
	}

	info := fromHID(devices[0])
	return &info, nil
}

func fromHID(d hid.DeviceInfo) Info {
	return Info{
		VendorID:     d.VendorID,
		ProductID:    d.ProductID,
		Path:         d.Path,
		Manufacturer: d.Manufacturer,
		Product:      d.Product,
		SerialNumber: d.Serial,
		UsagePage:    d.UsagePage,
		Usage:        d.Usage,
	}
}
