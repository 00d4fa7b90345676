// Package trace — структурированная трассировка конвертера.
//
// Драйвер открывает span-ы на уровне команды, прохода и файла, транслятор
// пишет точечные события на каждый откат к дословному тексту.
//
// # Levels
//
//   - off: ничего
//   - error: только события с Failed (файл не загрузился, синтаксические ошибки)
//   - phase: команда и проходы
//   - detail: плюс отдельные файлы
//   - debug: плюс события уровня оператора
//
// Failed события проходят на любом уровне, кроме off.
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "translate", parentID)
//	defer span.End("")
package trace
