package entity

import "PowerLine/modules/kit/errx"

const CodeGameNotFound errx.Code = "GAME_NOT_FOUND"

var ErrGameNotFound = errx.NewBiz(CodeGameNotFound, "game not found")
