package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/keketcl/umanager/internal/config"
	"github.com/keketcl/umanager/internal/device"
	"github.com/keketcl/umanager/internal/fsx"
	"github.com/keketcl/umanager/internal/service"
	"github.com/keketcl/umanager/internal/usb"
	"github.com/keketcl/umanager/internal/winapi"
)

func openStorage() (*device.BaseService, *device.StorageService, error) {
	session, err := winapi.Open()
	if err != nil {
		return nil, nil, err
	}
	cfg := config.Load()
	base, storage := session.Services(cfg.MaxAncestorDepth)
	return base, storage, nil
}

func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List attached USB devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, _, err := openStorage()
			if err != nil {
				return err
			}
			if err := base.Refresh(); err != nil {
				return err
			}

			ids := base.ListDeviceIDs()
			if len(ids) == 0 {
				fmt.Println("No USB devices found")
				return nil
			}
			for i, id := range ids {
				fmt.Printf("%d. %s\n", i+1, id)
			}
			return nil
		},
	}
}

func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [instance-id]",
		Short: "Show details for one USB device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := usb.ParseDeviceID(args[0])
			if err != nil {
				return err
			}

			base, _, err := openStorage()
			if err != nil {
				return err
			}
			if err := base.Refresh(); err != nil {
				return err
			}

			info, err := base.GetDeviceInfo(id)
			if err != nil {
				return err
			}
			printBaseInfo(info)
			return nil
		},
	}
}

func NewStorageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Manage USB storage devices",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List USB storage devices and their volumes",
			RunE: func(cmd *cobra.Command, args []string) error {
				_, storage, err := openStorage()
				if err != nil {
					return err
				}
				if err := storage.Refresh(); err != nil {
					return err
				}

				ids := storage.ListStorageDeviceIDs()
				if len(ids) == 0 {
					fmt.Println("No USB storage devices found")
					return nil
				}
				for i, id := range ids {
					info, err := storage.GetStorageDeviceInfo(id)
					if err != nil {
						fmt.Printf("%d. %s (unavailable: %v)\n", i+1, id, err)
						continue
					}
					fmt.Printf("%d. %s\n", i+1, id)
					printVolumes(info.Volumes)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "info [instance-id]",
			Short: "Show details for one USB storage device",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := usb.ParseDeviceID(args[0])
				if err != nil {
					return err
				}

				_, storage, err := openStorage()
				if err != nil {
					return err
				}
				if err := storage.Refresh(); err != nil {
					return err
				}

				info, err := storage.GetStorageDeviceInfo(id)
				if err != nil {
					return err
				}
				printBaseInfo(info.Base)
				printVolumes(info.Volumes)
				return nil
			},
		},
		&cobra.Command{
			Use:   "eject [instance-id]",
			Short: "Safely eject a USB storage device",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := usb.ParseDeviceID(args[0])
				if err != nil {
					return err
				}

				_, storage, err := openStorage()
				if err != nil {
					return err
				}
				if err := storage.Refresh(); err != nil {
					return err
				}

				result, err := storage.EjectDevice(id)
				if err != nil {
					return err
				}
				printEjectResult(result)
				return nil
			},
		},
	)

	return cmd
}

func NewBrowseCommand() *cobra.Command {
	var showHidden bool

	cmd := &cobra.Command{
		Use:   "browse [path]",
		Short: "List the contents of a directory on a mounted volume",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			svc := fsx.NewService()

			path := cfg.DefaultBrowseRoot
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no path given and no default browse root configured")
			}

			entries, err := svc.List(path, fsx.ListOptions{
				IncludeHidden: showHidden || cfg.ShowHiddenFiles,
			})
			if err != nil {
				return err
			}
			for _, e := range entries {
				printEntry(e)
			}

			if usage, err := svc.Usage(path); err == nil {
				fmt.Printf("\n%s free of %s (%.1f%% used)\n",
					formatBytes(usage.Free), formatBytes(usage.Total), usage.UsedPercent)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showHidden, "hidden", "a", false, "include hidden entries")
	return cmd
}

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch for storage device changes until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			daemon := service.NewDaemon(cfg.PollInterval(), cfg.MaxAncestorDepth)
			if err := daemon.Start(); err != nil {
				return err
			}
			defer daemon.Stop()

			<-cmd.Context().Done()
			return nil
		},
	}
}

func NewServiceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage the umanager background service",
	}

	newManager := func() (*service.Manager, error) {
		cfg := config.Load()
		return service.NewManager(cfg.PollInterval(), cfg.MaxAncestorDepth)
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "install",
			Short: "Install the background service",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager()
				if err != nil {
					return err
				}
				return m.Install()
			},
		},
		&cobra.Command{
			Use:   "uninstall",
			Short: "Remove the background service",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager()
				if err != nil {
					return err
				}
				return m.Uninstall()
			},
		},
		&cobra.Command{
			Use:   "start",
			Short: "Start the background service",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager()
				if err != nil {
					return err
				}
				return m.Start()
			},
		},
		&cobra.Command{
			Use:   "stop",
			Short: "Stop the background service",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager()
				if err != nil {
					return err
				}
				return m.Stop()
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show background service status",
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager()
				if err != nil {
					return err
				}
				fmt.Printf("Service status: %s\n", m.Status())
				return nil
			},
		},
		&cobra.Command{
			Use:    "run",
			Short:  "Run under the service manager (internal)",
			Hidden: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := newManager()
				if err != nil {
					return err
				}
				return m.Run()
			},
		},
	)

	return cmd
}

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change umanager settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current settings",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.Load()
				fmt.Printf("poll-interval: %d\n", cfg.PollIntervalSeconds)
				fmt.Printf("max-depth:     %d\n", cfg.MaxAncestorDepth)
				fmt.Printf("show-hidden:   %t\n", cfg.ShowHiddenFiles)
				fmt.Printf("browse-root:   %s\n", cfg.DefaultBrowseRoot)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set [key] [value]",
			Short: "Change one setting and persist it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg := config.Load()
				if err := applySetting(cfg, args[0], args[1]); err != nil {
					return err
				}
				return config.Save(cfg)
			},
		},
	)

	return cmd
}

func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "poll-interval":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("poll-interval wants a positive integer, got %q", value)
		}
		cfg.PollIntervalSeconds = n
	case "max-depth":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("max-depth wants a positive integer, got %q", value)
		}
		cfg.MaxAncestorDepth = n
	case "show-hidden":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("show-hidden wants true or false, got %q", value)
		}
		cfg.ShowHiddenFiles = b
	case "browse-root":
		cfg.DefaultBrowseRoot = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
