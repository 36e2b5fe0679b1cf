package log

import "log/slog"

func SessaoID[T ~string](id T) slog.Attr {
	return slog.String("sessao_id", string(id))
}

func Trilha[T ~string](t T) slog.Attr {
	return slog.String("trilha", string(t))
}

func Etapa[T ~string](e T) slog.Attr {
	return slog.String("etapa", string(e))
}

func Status(status int) slog.Attr {
	return slog.Int("status", status)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}

func ErrorString(msg string) slog.Attr {
	return slog.String("error", msg)
}
