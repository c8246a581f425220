package assignment

// Gift-status gates. Both tracks move forward only: once a timestamp is
// set the normal flow never clears it, and `Locked` freezes every status
// mutation. The pairing identity has its own flag, checked where the
// santa/recipient columns themselves change.

func guardMarkSent(a *Assignment) error {
	if a.Locked {
		return ErrStatusLocked
	}
	if a.SantaSentAt != nil {
		return ErrAlreadySent
	}
	return nil
}

func guardMarkReceived(a *Assignment) error {
	if a.Locked {
		return ErrStatusLocked
	}
	if a.RecipientReceivedAt != nil {
		return ErrAlreadyReceived
	}
	return nil
}

// guardAfterReceived gates thanks messages and receipt images, which may
// only attach once the gift is confirmed received.
func guardAfterReceived(a *Assignment) error {
	if a.Locked {
		return ErrStatusLocked
	}
	if a.RecipientReceivedAt == nil {
		return ErrNotReceived
	}
	return nil
}

// guardResetSent covers the admin rollback of the santa track, the one
// reverse transition, still blocked by the status lock.
func guardResetSent(a *Assignment) error {
	if a.Locked {
		return ErrStatusLocked
	}
	return nil
}
