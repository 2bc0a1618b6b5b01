package console

import (
	"context"

	"github.com/chainguard-dev/clog"
	"golang.org/x/sync/errgroup"

	"tasnim.dev/gamebox/internal/constants"
	"tasnim.dev/gamebox/internal/credential"
)

// RetrievePassword fetches the encrypted administrator password and the
// private key concurrently, decrypts, and caches the plaintext. While the
// provider has no password yet the cache holds constants.PasswordUnavailable.
// The cache is left untouched on failure.
func (s *Service) RetrievePassword(ctx context.Context) error {
	var blob, keyMaterial string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blob, err = s.instances.PasswordData(gctx, s.target.InstanceID)
		if err != nil {
			return upstream("get password data", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		keyMaterial, err = s.params.SecureString(gctx, s.target.KeyParameterName)
		if err != nil {
			return upstream("get key parameter", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	log := clog.FromContext(ctx)
	if blob == "" {
		log.Info("password not generated yet", "instance", s.target.InstanceID)
		s.passwords.Set(constants.PasswordUnavailable)
		return nil
	}

	password, err := credential.Decrypt(keyMaterial, blob)
	if err != nil {
		return decryption("decrypt password", err)
	}
	s.passwords.Set(password)
	log.Info("password decrypted", "instance", s.target.InstanceID)
	return nil
}
