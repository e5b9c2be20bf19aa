package device

import "testing"

func TestIsUSBCandidate(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{
			name: "instance id prefix",
			rec:  Record{InstanceID: `USB\VID_0781&PID_5567\AA11`},
			want: true,
		},
		{
			name: "usbstor instance id starts with USB too",
			rec:  Record{InstanceID: `USBSTOR\DISK&VEN_X\0123456789AB`},
			want: true,
		},
		{
			name: "pnp class usb any case",
			rec:  Record{InstanceID: `HID\SOMETHING\1`, PNPClass: strOf("usb")},
			want: true,
		},
		{
			name: "hardware id usb prefix",
			rec:  Record{InstanceID: `SCSI\DISK&X\1`, HardwareIDs: []string{`USB\VID_1234&PID_5678`}},
			want: true,
		},
		{
			name: "hardware id usbstor prefix",
			rec:  Record{InstanceID: `SCSI\DISK&X\1`, HardwareIDs: []string{`USBSTOR\DiskVendor`}},
			want: true,
		},
		{
			name: "compatible id usb prefix",
			rec:  Record{InstanceID: `HID\XX\1`, CompatibleIDs: []string{`USB\Class_03`}},
			want: true,
		},
		{
			name: "unrelated device",
			rec:  Record{InstanceID: `PCI\VEN_8086&DEV_1234\3`, PNPClass: strOf("Net")},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUSBCandidate(tt.rec); got != tt.want {
				t.Errorf("IsUSBCandidate(%q) = %v, want %v", tt.rec.InstanceID, got, tt.want)
			}
		})
	}
}

func TestIsUSBStorage(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{
			name: "usbstor instance id",
			rec:  Record{InstanceID: `USBSTOR\DISK&VEN_X\0123456789AB`},
			want: true,
		},
		{
			name: "usbstor instance id lower case",
			rec:  Record{InstanceID: `usbstor\disk&ven_x\0123`},
			want: true,
		},
		{
			name: "usbstor hardware id",
			rec:  Record{InstanceID: `SCSI\DISK\1`, HardwareIDs: []string{`USBSTOR\DiskSanDisk`}},
			want: true,
		},
		{
			name: "plain usb device is not storage",
			rec:  Record{InstanceID: `USB\VID_0781&PID_5567\AA11`},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUSBStorage(tt.rec); got != tt.want {
				t.Errorf("IsUSBStorage(%q) = %v, want %v", tt.rec.InstanceID, got, tt.want)
			}
		})
	}
}
