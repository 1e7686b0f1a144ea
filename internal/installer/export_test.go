package installer

import "context"

func (i *Installer) LocateRelease(ctx context.Context) error { return i.locateRelease(ctx) }

func (i *Installer) DownloadArtifact(ctx context.Context) error { return i.download(ctx) }

func (i *Installer) FixPermissions() error {
	_, err := i.fixPermissions()

	return err
}
