package engine

import (
	"time"

	"terramythica-server/internal/network"
	"terramythica-server/pkg/api"
	"terramythica-server/pkg/logger"
)

// Loop гоняет сеанс с фиксированным шагом и связывает его с внешним
// миром: принимает кадры ввода и запросы прокачки из каналов, после
// каждого шага рассылает снимок через хаб. Сеанс мутирует только
// горутина цикла.
type Loop struct {
	session *Session
	hub     *network.Broadcaster

	InputChan   chan api.InputFrame
	UpgradeChan chan string

	// frame - накопленный кадр ввода между шагами.
	frame api.InputFrame

	stop chan struct{}
	done chan struct{}
}

func NewLoop(session *Session, hub *network.Broadcaster) *Loop {
	return &Loop{
		session:     session,
		hub:         hub,
		InputChan:   make(chan api.InputFrame, 100),
		UpgradeChan: make(chan string, 10),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
	}
}

// Run запускает цикл симуляции. Блокируется до Stop.
func (l *Loop) Run() {
	defer close(l.done)

	ticker := time.NewTicker(time.Duration(l.session.cfg.TickMillis) * time.Millisecond)
	defer ticker.Stop()

	logger.Log.WithField("tick_ms", l.session.cfg.TickMillis).Info("Simulation loop started")

	for {
		select {
		case <-l.stop:
			logger.Log.Info("Simulation loop stopped")
			return
		case <-ticker.C:
			l.drainInbox()
			l.session.Step(l.frame)
			l.clearTriggers()

			l.hub.Broadcast(api.ServerMessage{
				Type:     "SNAPSHOT",
				Snapshot: l.session.BuildSnapshot(),
				Events:   l.session.DrainEvents(),
			})
		}
	}
}

// Stop останавливает цикл и дожидается выхода горутины.
func (l *Loop) Stop() {
	close(l.stop)
	<-l.done
}

// drainInbox выгребает все, что накопилось в каналах с прошлого шага.
// Прокачка принимается и на паузе: меню улучшений и есть пауза.
func (l *Loop) drainInbox() {
	for {
		select {
		case in := <-l.InputChan:
			l.mergeFrame(in)
		case attr := <-l.UpgradeChan:
			l.session.Upgrade(attr)
		default:
			return
		}
	}
}

// mergeFrame сливает свежий кадр в накопленный: уровни направлений
// замещаются, фронты складываются по ИЛИ, чтобы короткое нажатие между
// шагами не потерялось.
func (l *Loop) mergeFrame(in api.InputFrame) {
	l.frame.Up = in.Up
	l.frame.Down = in.Down
	l.frame.Left = in.Left
	l.frame.Right = in.Right

	l.frame.Attack = l.frame.Attack || in.Attack
	l.frame.Cast = l.frame.Cast || in.Cast
	l.frame.WeaponNext = l.frame.WeaponNext || in.WeaponNext
	l.frame.WeaponPrev = l.frame.WeaponPrev || in.WeaponPrev
	l.frame.MagicNext = l.frame.MagicNext || in.MagicNext
	l.frame.MagicPrev = l.frame.MagicPrev || in.MagicPrev
	l.frame.ToggleMenu = l.frame.ToggleMenu || in.ToggleMenu
}

// clearTriggers сбрасывает фронты после шага, уровни направлений живут
// до следующего кадра ввода.
func (l *Loop) clearTriggers() {
	l.frame.Attack = false
	l.frame.Cast = false
	l.frame.WeaponNext = false
	l.frame.WeaponPrev = false
	l.frame.MagicNext = false
	l.frame.MagicPrev = false
	l.frame.ToggleMenu = false
}
