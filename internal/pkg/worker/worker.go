package worker

import (
	"context"
	"fmt"
	"log"
	"time"
)

// ClaimTask 挑战奖励领取任务
// Redis 预扣减成功后进入队列，由 worker 落库并给账本入账
type ClaimTask struct {
	UserID      string
	ChallengeID string
	RewardGems  int64
	Retry       int // 重试次数
}

// ClaimStore 落库能力 (由 challenge 仓储提供)
type ClaimStore interface {
	DecreaseRewardStock(challengeID string) error
	CreateClaim(userID, challengeID string, rewardGems int64) error
}

// RewardCreditor 奖励入账能力 (由 gems 服务提供)
type RewardCreditor interface {
	CreditReward(ctx context.Context, userID string, amount int64, reason string) error
}

type WorkerPool struct {
	TaskQueue  chan ClaimTask
	RetryQueue chan ClaimTask // 重试队列
	Store      ClaimStore
	Creditor   RewardCreditor
	WorkerNum  int
	MaxRetry   int // 最大重试次数
}

func NewWorkerPool(store ClaimStore, creditor RewardCreditor, workerNum int, bufferSize int) *WorkerPool {
	return &WorkerPool{
		TaskQueue:  make(chan ClaimTask, bufferSize),
		RetryQueue: make(chan ClaimTask, bufferSize/2),
		Store:      store,
		Creditor:   creditor,
		WorkerNum:  workerNum,
		MaxRetry:   3, // 最多重试3次
	}
}

func (p *WorkerPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	// 启动重试处理协程
	go p.retryWorker()
	log.Printf("Claim worker pool started with %d workers", p.WorkerNum)
}

func (p *WorkerPool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.processTask(task); err != nil {
			log.Printf("[Worker %d] Failed to process claim (UserID: %s, ChallengeID: %s): %v",
				id, task.UserID, task.ChallengeID, err)

			// 如果未达到最大重试次数，加入重试队列
			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
					log.Printf("[Worker %d] Claim added to retry queue (attempt %d/%d)",
						id, task.Retry, p.MaxRetry)
				default:
					log.Printf("[Worker %d] Retry queue full, claim dropped: %+v", id, task)
					p.logFailedTask(task, err)
				}
			} else {
				log.Printf("[Worker %d] Claim exceeded max retries, dropped: %+v", id, task)
				p.logFailedTask(task, err)
			}
		}
	}
}

func (p *WorkerPool) retryWorker() {
	for task := range p.RetryQueue {
		// 延迟重试，避免立即重试
		time.Sleep(time.Duration(task.Retry) * time.Second)

		// 重新加入主队列
		select {
		case p.TaskQueue <- task:
			log.Printf("[RetryWorker] Claim re-queued (attempt %d/%d)", task.Retry, p.MaxRetry)
		default:
			log.Printf("[RetryWorker] Main queue full, claim dropped: %+v", task)
			p.logFailedTask(task, nil)
		}
	}
}

func (p *WorkerPool) processTask(task ClaimTask) error {
	// 1. 扣减数据库侧的奖励库存 (Redis 侧已经预扣减过)
	if err := p.Store.DecreaseRewardStock(task.ChallengeID); err != nil {
		return err
	}

	// 2. 写领取记录
	if err := p.Store.CreateClaim(task.UserID, task.ChallengeID, task.RewardGems); err != nil {
		return err
	}

	// 3. 宝石入账
	reason := fmt.Sprintf("challenge %s reward", task.ChallengeID)
	if err := p.Creditor.CreditReward(context.Background(), task.UserID, task.RewardGems, reason); err != nil {
		return err
	}

	return nil
}

func (p *WorkerPool) logFailedTask(task ClaimTask, err error) {
	// TODO: 接入死信存储，目前只打日志
	log.Printf("[DeadLetter] Claim failed permanently: UserID=%s, ChallengeID=%s, Error=%v",
		task.UserID, task.ChallengeID, err)
}

func (p *WorkerPool) AddTask(task ClaimTask) {
	select {
	case p.TaskQueue <- task:
		// 任务入队成功
	default:
		log.Printf("Claim queue full, dropping task: %+v", task)
		p.logFailedTask(task, nil)
	}
}
