package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/paintmap/internal/common"
)

func (d *Dispatcher) commandTable() map[string]Command {
	credentials := []string{common.ArgUserName, common.ArgPassword}
	with := func(extra ...string) []string {
		return append(append([]string{}, credentials...), extra...)
	}

	return map[string]Command{
		"account_count":           {Handle: d.accountCount},
		"account_auth":            {Required: credentials, Handle: d.accountAuth},
		"account_create":          {Required: credentials, Handle: d.accountCreate},
		"account_password_change": {Required: with(common.ArgPasswordNew), Handle: d.accountPasswordChange},
		"account_delete":          {Required: credentials, Handle: d.accountDelete},
		"account_map_get":         {Required: credentials, Handle: d.accountMapGet},
		"map_get_empty":           {Handle: d.mapGetEmpty},
		"map_save":                {Required: with(common.ArgMap), Handle: d.mapSave},
		"map_image_upload":        {Required: with(common.ArgImage), Handle: d.mapImageUpload},
		"shared_map_get":          {Required: []string{common.ArgID}, Handle: d.sharedMapGet},
	}
}

func (d *Dispatcher) accountCount(ctx context.Context, _ Args) (*Response, error) {
	n, err := d.accounts.Count(ctx)
	if err != nil {
		return nil, err
	}
	r := ok()
	r.Count = &n
	return r, nil
}

func (d *Dispatcher) accountAuth(ctx context.Context, args Args) (*Response, error) {
	res, err := d.accounts.Authenticate(ctx, args.Get(common.ArgUserName), args.Get(common.ArgPassword))
	if err != nil {
		return nil, err
	}

	login := res.Login()
	r := ok()
	r.Login = &login
	if login {
		r.ID = res.ID
	}
	return r, nil
}

func (d *Dispatcher) accountCreate(ctx context.Context, args Args) (*Response, error) {
	userName := args.Get(common.ArgUserName)

	id, err := d.accounts.Create(ctx, userName, args.Get(common.ArgPassword), args.MapType(), args.Int(common.ArgShareLevel))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fail(fmt.Sprintf("ID %s is already exists", userName), err)
		}
		return nil, err
	}

	d.logger.Info(ctx, "account created", "user_name", userName, "id", id)

	r := ok()
	r.ID = id
	return r, nil
}

func (d *Dispatcher) accountPasswordChange(ctx context.Context, args Args) (*Response, error) {
	err := d.accounts.ChangePassword(ctx,
		args.Get(common.ArgUserName), args.Get(common.ArgPassword), args.Get(common.ArgPasswordNew))
	if err != nil {
		return nil, err
	}
	return ok(), nil
}

func (d *Dispatcher) accountDelete(ctx context.Context, args Args) (*Response, error) {
	userName := args.Get(common.ArgUserName)
	if err := d.accounts.Delete(ctx, userName, args.Get(common.ArgPassword)); err != nil {
		return nil, err
	}

	d.logger.Info(ctx, "account deleted", "user_name", userName)
	return ok(), nil
}

func (d *Dispatcher) accountMapGet(ctx context.Context, args Args) (*Response, error) {
	account, err := d.accounts.Resolve(ctx, args.Get(common.ArgUserName), args.Get(common.ArgPassword))
	if err != nil {
		return nil, err
	}

	view, err := d.maps.GetByAccount(ctx, account.ID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fail("Map not found", err)
		}
		return nil, err
	}

	r := ok()
	r.MapView = view
	r.ID = account.ID
	return r, nil
}

func (d *Dispatcher) mapGetEmpty(_ context.Context, args Args) (*Response, error) {
	view := d.maps.GetEmpty(args.MapType(), args.Int(common.ArgShareLevel))

	r := ok()
	r.MapView = &view
	return r, nil
}

func (d *Dispatcher) mapSave(ctx context.Context, args Args) (*Response, error) {
	account, err := d.accounts.Resolve(ctx, args.Get(common.ArgUserName), args.Get(common.ArgPassword))
	if err != nil {
		return nil, err
	}

	if err := d.maps.Save(ctx, account.ID, []byte(args.Get(common.ArgMap))); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// the account vanished between the credential check and the write
			return nil, fail("Authentication failed", err)
		}
		return nil, err
	}
	return ok(), nil
}

func (d *Dispatcher) mapImageUpload(ctx context.Context, args Args) (*Response, error) {
	account, err := d.accounts.Resolve(ctx, args.Get(common.ArgUserName), args.Get(common.ArgPassword))
	if err != nil {
		return nil, err
	}

	if err := d.maps.UploadImage(ctx, account.ID, args.Get(common.ArgImage)); err != nil {
		return nil, err
	}
	return ok(), nil
}

// sharedMapGet reports a missing map as a succeeding response carrying an
// error message, while a private map is a plain failure.
func (d *Dispatcher) sharedMapGet(ctx context.Context, args Args) (*Response, error) {
	id, valid := args.MapID()
	if !valid {
		return nil, common.ErrorInvalidArguments
	}

	view, err := d.maps.GetShared(ctx, id)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		r := ok()
		r.Error = fmt.Sprintf("map %s is not exist", id)
		return r, nil
	case errors.Is(err, common.ErrorNotShared):
		return nil, fail(fmt.Sprintf("map %s is not shared", id), err)
	case err != nil:
		return nil, err
	}

	r := ok()
	r.MapView = view
	r.ID = id
	return r, nil
}
